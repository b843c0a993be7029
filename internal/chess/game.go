package chess

import (
	"fmt"

	"github.com/apex/log"
)

// Game owns one board and its State. It is not safe for concurrent use; a
// host serving several goroutines must serialize calls per Game.
type Game struct {
	board  *Board
	state  *State
	gen    *Generator
	exec   Executor
	ends   *EndConditions
	cache  *AttackCache
	legal  []Move
	logger log.Interface

	startTurn Color
	startLast *Move
	startHalf int
	startFull int
}

type Option func(*Game)

// WithLogger routes the game's debug logging to l.
func WithLogger(l log.Interface) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithPosition starts the game from a copy of b with toMove to play instead
// of the standard initial position.
func WithPosition(b *Board, toMove Color) Option {
	return func(g *Game) {
		g.board = b.Clone()
		g.startTurn = toMove
	}
}

// WithLastMove sets the move that led to the starting position. Only a double
// pawn push matters: it opens en passant for the first reply.
func WithLastMove(m Move) Option {
	return func(g *Game) {
		g.startLast = &m
	}
}

// WithClocks starts the half-move clock and full-move number at the given
// values instead of 0 and 1.
func WithClocks(halfMove, fullMove int) Option {
	return func(g *Game) {
		g.startHalf = halfMove
		g.startFull = fullMove
	}
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		board:     NewBoard(),
		gen:       NewGenerator(),
		cache:     NewAttackCache(),
		logger:    log.Log,
		startTurn: White,
		startFull: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.ends = NewEndConditions(g.gen, g.cache)
	g.state = NewStateAfter(g.board, g.startTurn, g.startLast)
	g.state.HalfMoveClock = g.startHalf
	if g.startFull > 0 {
		g.state.FullMoveNumber = g.startFull
	}
	g.ends.Evaluate(g.board, g.state)
	g.state.Record(g.board)
	return g
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) Turn() Color {
	return g.state.Turn
}

// LastMove returns the previous move, or nil at the start.
func (g *Game) LastMove() *Move {
	return copyMove(g.state.LastMove)
}

func (g *Game) History() []Move {
	return append([]Move(nil), g.state.History...)
}

func (g *Game) HalfMoveClock() int {
	return g.state.HalfMoveClock
}

func (g *Game) FullMoveNumber() int {
	return g.state.FullMoveNumber
}

// Key is the position-identity key of the current position.
func (g *Game) Key() string {
	return g.state.Key(g.board)
}

// Repetitions is how many times the current position has occurred.
func (g *Game) Repetitions() int {
	return g.state.Repetitions(g.board)
}

func (g *Game) CanUndo() bool { return g.state.CanUndo() }
func (g *Game) CanRedo() bool { return g.state.CanRedo() }

// Status is the set of end-condition flags for the side to move.
type Status struct {
	Check      bool       `json:"isCheck"`
	Checkmate  bool       `json:"isCheckmate"`
	Stalemate  bool       `json:"isStalemate"`
	Draw       bool       `json:"isDraw"`
	DrawReason DrawReason `json:"drawReason,omitempty"`
}

// Over reports whether no further move can be played.
func (s Status) Over() bool {
	return s.Checkmate || s.Stalemate || s.Draw
}

func (g *Game) Status() Status {
	return Status{
		Check:      g.state.Check,
		Checkmate:  g.state.Checkmate,
		Stalemate:  g.state.Stalemate,
		Draw:       g.state.Draw,
		DrawReason: g.state.DrawReason,
	}
}

// CheckedKing returns the square of the king in check, if any.
func (g *Game) CheckedKing() (Square, bool) {
	if !g.state.Check {
		return Square{}, false
	}
	return g.state.KingSquare(g.state.Turn), true
}

// LegalMoves lists the legal moves of the side to move.
func (g *Game) LegalMoves() []Move {
	if g.legal == nil {
		g.legal = g.gen.LegalMoves(g.board, g.state.Turn, g.state)
	}
	return append([]Move(nil), g.legal...)
}

// Find looks up the legal move from -> to. Promotions come back resolved to
// Queen; finalize them with Move.Promote.
func (g *Game) Find(from, to Square) (Move, bool) {
	for _, m := range g.LegalMoves() {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// MakeMove plays from -> to. promotion is only read for promoting moves.
func (g *Game) MakeMove(from, to Square, promotion Kind) error {
	return g.Play(Move{From: from, To: to, Promotion: promotion})
}

// Play commits m. Only From, To and Promotion are read; the rest of the
// record comes from the matching legal move. A promoting move must carry the
// chosen kind.
func (g *Game) Play(m Move) error {
	if g.Status().Over() {
		return ErrGameOver
	}
	legal, ok := g.Find(m.From, m.To)
	if !ok {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	if legal.IsPromotion() {
		if m.Promotion == NoKind {
			return fmt.Errorf("%w: %s", ErrPromotionRequired, legal.From.String()+legal.To.String())
		}
		var err error
		if legal, err = legal.Promote(m.Promotion); err != nil {
			return err
		}
	}

	g.board = g.exec.Apply(g.board, legal)
	g.state.UpdateAfterMove(legal, g.board)
	g.ends.Evaluate(g.board, g.state)
	g.state.Record(g.board)
	g.legal = nil

	g.logger.WithFields(log.Fields{
		"move":   legal.String(),
		"turn":   g.state.Turn,
		"status": g.statusLabel(),
		"cache":  g.cache.Len(),
	}).Debug("move committed")
	return nil
}

// Undo steps back one move. It reports false at the start of the game.
func (g *Game) Undo() (Snapshot, bool) {
	s, ok := g.state.Undo()
	if !ok {
		return s, false
	}
	g.board = s.Board.Clone()
	g.legal = nil
	g.logger.WithField("ply", len(s.History)).Debug("undo")
	return s, true
}

// Redo replays a move taken back by Undo.
func (g *Game) Redo() (Snapshot, bool) {
	s, ok := g.state.Redo()
	if !ok {
		return s, false
	}
	g.board = s.Board.Clone()
	g.legal = nil
	g.logger.WithField("ply", len(s.History)).Debug("redo")
	return s, true
}

func (g *Game) statusLabel() string {
	s := g.Status()
	switch {
	case s.Checkmate:
		return "checkmate"
	case s.Stalemate:
		return "stalemate"
	case s.Draw:
		return "draw: " + s.DrawReason.String()
	case s.Check:
		return "check"
	}
	return "in progress"
}
