// Package fen sets up engine positions from FEN records.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
	nchess "github.com/notnil/chess"
)

var ErrInvalid = errors.New("invalid FEN")

// Position is a parsed FEN record in engine terms.
type Position struct {
	Board *chess.Board
	Turn  chess.Color
	// LastMove is the double pawn push implied by the en passant field, or nil.
	LastMove       *chess.Move
	HalfMoveClock  int
	FullMoveNumber int
}

var kinds = map[nchess.PieceType]chess.Kind{
	nchess.Pawn:   chess.Pawn,
	nchess.Knight: chess.Knight,
	nchess.Bishop: chess.Bishop,
	nchess.Rook:   chess.Rook,
	nchess.Queen:  chess.Queen,
	nchess.King:   chess.King,
}

var castleRooks = map[nchess.Side]int{nchess.KingSide: 7, nchess.QueenSide: 0}

func color(c nchess.Color) chess.Color {
	if c == nchess.White {
		return chess.White
	}
	return chess.Black
}

func homeRow(c chess.Color) int {
	if c == chess.White {
		return 0
	}
	return 7
}

var backRank = [8]chess.Kind{chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King, chess.Bishop, chess.Knight, chess.Rook}

// onStartSquare reports whether a piece stands where the initial position
// puts it. Kings and rooks are settled by the castling field instead.
func onStartSquare(kind chess.Kind, c chess.Color, at chess.Square) bool {
	switch kind {
	case chess.Pawn:
		return at.Row == homeRow(c)+c.Forward()
	case chess.King, chess.Rook:
		return false
	}
	return at.Row == homeRow(c) && backRank[at.Col] == kind
}

// Parse reads a FEN record. HasMoved is reconstructed from what the record
// implies: pieces on their initial squares and the kings and rooks backing a
// castling right are unmoved, everything else has moved.
func Parse(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return Position{}, fmt.Errorf("%w: want 6 fields, got %d", ErrInvalid, len(fields))
	}
	opt, err := nchess.FEN(s)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	pos := nchess.NewGame(opt).Position()

	b := chess.EmptyBoard()
	for sq, p := range pos.Board().SquareMap() {
		c := color(p.Color())
		at := chess.Sq(int(sq.Rank()), int(sq.File()))
		kind := kinds[p.Type()]
		b.Set(at, &chess.Piece{Kind: kind, Color: c, HasMoved: !onStartSquare(kind, c, at)})
	}
	for _, nc := range []nchess.Color{nchess.White, nchess.Black} {
		row := homeRow(color(nc))
		for side, col := range castleRooks {
			if !pos.CastleRights().CanCastle(nc, side) {
				continue
			}
			king, rook := b.At(chess.Sq(row, 4)), b.At(chess.Sq(row, col))
			if king == nil || king.Kind != chess.King || rook == nil || rook.Kind != chess.Rook {
				return Position{}, fmt.Errorf("%w: castling right without king and rook", ErrInvalid)
			}
			king.HasMoved = false
			rook.HasMoved = false
		}
	}

	out := Position{Board: b, Turn: color(pos.Turn())}
	if out.LastMove, err = lastMove(fields[3], out.Turn); err != nil {
		return Position{}, err
	}
	if m := out.LastMove; m != nil {
		if p := b.At(m.To); p == nil || p.Kind != chess.Pawn || p.Color != m.Piece.Color {
			return Position{}, fmt.Errorf("%w: no pawn behind en passant square %s", ErrInvalid, fields[3])
		}
	}
	if out.HalfMoveClock, err = strconv.Atoi(fields[4]); err != nil || out.HalfMoveClock < 0 {
		return Position{}, fmt.Errorf("%w: half-move clock %q", ErrInvalid, fields[4])
	}
	if out.FullMoveNumber, err = strconv.Atoi(fields[5]); err != nil || out.FullMoveNumber < 1 {
		return Position{}, fmt.Errorf("%w: full-move number %q", ErrInvalid, fields[5])
	}
	return out, nil
}

// lastMove rebuilds the double push that left target behind.
func lastMove(target string, toMove chess.Color) (*chess.Move, error) {
	if target == "-" {
		return nil, nil
	}
	sq, err := chess.ParseSquare(target)
	if err != nil {
		return nil, fmt.Errorf("%w: en passant square: %v", ErrInvalid, err)
	}
	mover := toMove.Opponent()
	if sq.Row != homeRow(mover)+2*mover.Forward() {
		return nil, fmt.Errorf("%w: en passant square %s on the wrong rank", ErrInvalid, target)
	}
	return &chess.Move{
		From:  chess.Sq(sq.Row-mover.Forward(), sq.Col),
		To:    chess.Sq(sq.Row+mover.Forward(), sq.Col),
		Piece: chess.Piece{Kind: chess.Pawn, Color: mover},
	}, nil
}

// Options turns p into engine options for chess.NewGame.
func (p Position) Options() []chess.Option {
	opts := []chess.Option{
		chess.WithPosition(p.Board, p.Turn),
		chess.WithClocks(p.HalfMoveClock, p.FullMoveNumber),
	}
	if p.LastMove != nil {
		opts = append(opts, chess.WithLastMove(*p.LastMove))
	}
	return opts
}
