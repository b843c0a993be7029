package chess

import (
	"testing"

	nchess "github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

var fromNotnilKind = map[nchess.PieceType]Kind{
	nchess.Pawn:   Pawn,
	nchess.Knight: Knight,
	nchess.Bishop: Bishop,
	nchess.Rook:   Rook,
	nchess.Queen:  Queen,
	nchess.King:   King,
}

func fromNotnilColor(c nchess.Color) Color {
	if c == nchess.White {
		return White
	}
	return Black
}

// boardFromFEN builds a board from a FEN string. HasMoved is derived the way
// FEN implies it: pawns on their start rank and kings/rooks backing a
// castling right are unmoved, every other piece has moved. The en passant
// field is ignored; tests pass the previous move explicitly.
func boardFromFEN(t testing.TB, fen string) (*Board, Color) {
	t.Helper()
	opt, err := nchess.FEN(fen)
	require.NoError(t, err)
	pos := nchess.NewGame(opt).Position()

	b := EmptyBoard()
	for sq, p := range pos.Board().SquareMap() {
		kind, color := fromNotnilKind[p.Type()], fromNotnilColor(p.Color())
		at := Sq(int(sq.Rank()), int(sq.File()))
		moved := true
		if kind == Pawn && at.Row == pawnStartRow(color) {
			moved = false
		}
		b.Set(at, &Piece{Kind: kind, Color: color, HasMoved: moved})
	}

	rights := pos.CastleRights()
	for _, c := range []nchess.Color{nchess.White, nchess.Black} {
		color := fromNotnilColor(c)
		row := color.HomeRow()
		for side, s := range map[nchess.Side]CastleSide{nchess.KingSide: Kingside, nchess.QueenSide: Queenside} {
			if !rights.CanCastle(c, side) {
				continue
			}
			b.At(Sq(row, kingHomeCol)).HasMoved = false
			b.At(Sq(row, castleGeometries[s].rookFrom)).HasMoved = false
		}
	}
	return b, fromNotnilColor(pos.Turn())
}

// notnilMoveCount counts distinct from/to pairs notnil/chess considers legal,
// folding the four promotion choices into one.
func notnilMoveCount(t testing.TB, fen string) int {
	t.Helper()
	opt, err := nchess.FEN(fen)
	require.NoError(t, err)
	seen := make(map[[2]nchess.Square]bool)
	for _, m := range nchess.NewGame(opt).ValidMoves() {
		seen[[2]nchess.Square{m.S1(), m.S2()}] = true
	}
	return len(seen)
}

func sq(t testing.TB, s string) Square {
	t.Helper()
	out, err := ParseSquare(s)
	require.NoError(t, err)
	return out
}

var promotionLetters = map[byte]Kind{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

// play commits coordinate moves such as "e2e4" or "e7e8n" on g.
func play(t testing.TB, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		require.True(t, len(s) == 4 || len(s) == 5, "bad move %q", s)
		promo := NoKind
		if len(s) == 5 {
			promo = promotionLetters[s[4]]
		}
		require.NoError(t, g.MakeMove(sq(t, s[:2]), sq(t, s[2:4]), promo), "move %s", s)
	}
}

func hasMove(moves []Move, from, to Square) bool {
	for _, m := range moves {
		if m.From == from && m.To == to {
			return true
		}
	}
	return false
}
