package chess

import (
	"fmt"

	"golang.org/x/exp/maps"
)

const fiftyMoveLimit = 100

type DrawReason uint8

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	}
	return ""
}

func (r DrawReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *DrawReason) UnmarshalText(text []byte) error {
	for _, reason := range []DrawReason{NoDraw, FiftyMoveRule, ThreefoldRepetition, InsufficientMaterial} {
		if reason.String() == string(text) {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("chess: unknown draw reason %q", text)
}

// State is the turn, history, clock and repetition ledger of a game. It never
// decides check or end status itself; EndConditions fills those flags in.
type State struct {
	Turn           Color
	History        []Move
	LastMove       *Move
	WhiteKing      Square
	BlackKing      Square
	Check          bool
	Checkmate      bool
	Stalemate      bool
	Draw           bool
	DrawReason     DrawReason
	HalfMoveClock  int
	FullMoveNumber int
	Positions      map[string]int

	snapshots []Snapshot
	cursor    int
}

// Snapshot is a full copy of the board and every State field at one point of
// the game.
type Snapshot struct {
	Board          *Board
	Turn           Color
	History        []Move
	LastMove       *Move
	WhiteKing      Square
	BlackKing      Square
	Check          bool
	Checkmate      bool
	Stalemate      bool
	Draw           bool
	DrawReason     DrawReason
	HalfMoveClock  int
	FullMoveNumber int
	Positions      map[string]int
}

// NewState starts a ledger for b with toMove to play. The starting position
// counts as the first occurrence of its key. Call Record once the end flags
// are filled in to make it the first snapshot.
func NewState(b *Board, toMove Color) *State {
	return NewStateAfter(b, toMove, nil)
}

// NewStateAfter is NewState for a position reached by last, which may be nil.
func NewStateAfter(b *Board, toMove Color, last *Move) *State {
	st := &State{
		Turn:           toMove,
		LastMove:       copyMove(last),
		FullMoveNumber: 1,
		Positions:      make(map[string]int),
	}
	st.syncKings(b)
	st.Positions[st.Key(b)]++
	return st
}

// Key is the position key of b with this state's turn and last move.
func (st *State) Key(b *Board) string {
	return PositionKey(b, st.Turn, st.LastMove)
}

// Repetitions is how often the current position of b has occurred.
func (st *State) Repetitions(b *Board) int {
	return st.Positions[st.Key(b)]
}

// UpdateAfterMove books m, already applied to b, into the ledger.
func (st *State) UpdateAfterMove(m Move, b *Board) {
	if m.Piece.Kind == Pawn || m.IsCapture() {
		st.HalfMoveClock = 0
	} else {
		st.HalfMoveClock++
	}
	if st.Turn == Black {
		st.FullMoveNumber++
	}
	st.Turn = st.Turn.Opponent()
	st.History = append(st.History, m)
	last := m
	st.LastMove = &last
	st.syncKings(b)
	st.Positions[st.Key(b)]++
}

func (st *State) syncKings(b *Board) {
	if sq, ok := b.KingSquare(White); ok {
		st.WhiteKing = sq
	}
	if sq, ok := b.KingSquare(Black); ok {
		st.BlackKing = sq
	}
}

// KingSquare is the tracked king square of color.
func (st *State) KingSquare(color Color) Square {
	if color == White {
		return st.WhiteKing
	}
	return st.BlackKing
}

// Record pushes a snapshot of st and b. Anything beyond the cursor, i.e.
// positions reachable by Redo, is discarded first.
func (st *State) Record(b *Board) {
	if len(st.snapshots) > 0 {
		st.snapshots = st.snapshots[:st.cursor+1]
	}
	st.snapshots = append(st.snapshots, st.snapshot(b))
	st.cursor = len(st.snapshots) - 1
}

// Undo steps back one snapshot and restores it. It reports false at the
// start of the game.
func (st *State) Undo() (Snapshot, bool) {
	if st.cursor <= 0 {
		return Snapshot{}, false
	}
	st.cursor--
	return st.restore(st.snapshots[st.cursor]), true
}

// Redo steps forward to a snapshot left behind by Undo.
func (st *State) Redo() (Snapshot, bool) {
	if st.cursor+1 >= len(st.snapshots) {
		return Snapshot{}, false
	}
	st.cursor++
	return st.restore(st.snapshots[st.cursor]), true
}

func (st *State) CanUndo() bool { return st.cursor > 0 }
func (st *State) CanRedo() bool { return st.cursor+1 < len(st.snapshots) }

func (st *State) snapshot(b *Board) Snapshot {
	return Snapshot{
		Board:          b.Clone(),
		Turn:           st.Turn,
		History:        append([]Move(nil), st.History...),
		LastMove:       copyMove(st.LastMove),
		WhiteKing:      st.WhiteKing,
		BlackKing:      st.BlackKing,
		Check:          st.Check,
		Checkmate:      st.Checkmate,
		Stalemate:      st.Stalemate,
		Draw:           st.Draw,
		DrawReason:     st.DrawReason,
		HalfMoveClock:  st.HalfMoveClock,
		FullMoveNumber: st.FullMoveNumber,
		Positions:      maps.Clone(st.Positions),
	}
}

// restore copies s into st and returns a copy of s whose board the caller
// may own.
func (st *State) restore(s Snapshot) Snapshot {
	st.Turn = s.Turn
	st.History = append([]Move(nil), s.History...)
	st.LastMove = copyMove(s.LastMove)
	st.WhiteKing = s.WhiteKing
	st.BlackKing = s.BlackKing
	st.Check = s.Check
	st.Checkmate = s.Checkmate
	st.Stalemate = s.Stalemate
	st.Draw = s.Draw
	st.DrawReason = s.DrawReason
	st.HalfMoveClock = s.HalfMoveClock
	st.FullMoveNumber = s.FullMoveNumber
	st.Positions = maps.Clone(s.Positions)

	out := s
	out.Board = s.Board.Clone()
	out.History = append([]Move(nil), s.History...)
	out.LastMove = copyMove(s.LastMove)
	out.Positions = maps.Clone(s.Positions)
	return out
}

func copyMove(m *Move) *Move {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
