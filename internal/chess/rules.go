package chess

import "fmt"

// PieceRules is the movement geometry of one piece kind. Only pawns depend on
// color. Instances are immutable; use RulesFor to get the shared one.
type PieceRules struct {
	kind  Kind
	color Color
}

var sharedRules = func() (t [2][King + 1]PieceRules) {
	for _, c := range []Color{White, Black} {
		for k := Pawn; k <= King; k++ {
			t[c][k] = PieceRules{kind: k, color: c}
		}
	}
	return t
}()

// RulesFor returns the shared rules for a (kind, color) pair.
func RulesFor(kind Kind, color Color) PieceRules {
	return sharedRules[color][kind]
}

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookDirs      = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	bishopDirs    = [4][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

// pawnStartRow is the row a pawn may double-advance from.
func pawnStartRow(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// PotentialMoves returns every square the piece could reach on an empty
// board. Pawn diagonals are included speculatively.
func (r PieceRules) PotentialMoves(from Square) []Square {
	return r.AppendPotentialMoves(make([]Square, 0, 28), from)
}

// AppendPotentialMoves is PotentialMoves writing into dst.
func (r PieceRules) AppendPotentialMoves(dst []Square, from Square) []Square {
	switch r.kind {
	case Pawn:
		fwd := r.color.Forward()
		for _, to := range [3]Square{from.offset(fwd, 0), from.offset(fwd, -1), from.offset(fwd, 1)} {
			if to.OnBoard() {
				dst = append(dst, to)
			}
		}
		if from.Row == pawnStartRow(r.color) {
			dst = append(dst, from.offset(2*fwd, 0))
		}
		return dst
	case Knight:
		return appendOffsets(dst, from, knightOffsets[:])
	case Bishop:
		return appendRays(dst, from, bishopDirs[:])
	case Rook:
		return appendRays(dst, from, rookDirs[:])
	case Queen:
		dst = RulesFor(Rook, r.color).AppendPotentialMoves(dst, from)
		return RulesFor(Bishop, r.color).AppendPotentialMoves(dst, from)
	case King:
		return appendOffsets(dst, from, kingOffsets[:])
	}
	panic(fmt.Sprintf("chess: no movement rules for %v", r.kind))
}

// IsValidMove reports whether from->to is geometrically valid on b. Sliders
// need a clear path; pawns need the occupancy their move type implies. Whether
// the destination holds a friendly piece is not checked here.
func (r PieceRules) IsValidMove(b *Board, from, to Square) bool {
	if from == to || !to.OnBoard() {
		return false
	}
	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch r.kind {
	case Pawn:
		fwd := r.color.Forward()
		switch {
		case dc == 0 && dr == fwd:
			return b.At(to) == nil
		case dc == 0 && dr == 2*fwd && from.Row == pawnStartRow(r.color):
			return b.At(from.offset(fwd, 0)) == nil && b.At(to) == nil
		case abs(dc) == 1 && dr == fwd:
			t := b.At(to)
			return t != nil && t.Color != r.color
		}
		return false
	case Knight:
		return abs(dr)*abs(dc) == 2
	case Bishop:
		return abs(dr) == abs(dc) && clearPath(b, from, to)
	case Rook:
		return (dr == 0) != (dc == 0) && clearPath(b, from, to)
	case Queen:
		return RulesFor(Rook, r.color).IsValidMove(b, from, to) ||
			RulesFor(Bishop, r.color).IsValidMove(b, from, to)
	case King:
		return abs(dr) <= 1 && abs(dc) <= 1
	}
	panic(fmt.Sprintf("chess: no movement rules for %v", r.kind))
}

func appendOffsets(dst []Square, from Square, offsets [][2]int) []Square {
	for _, o := range offsets {
		if to := from.offset(o[0], o[1]); to.OnBoard() {
			dst = append(dst, to)
		}
	}
	return dst
}

func appendRays(dst []Square, from Square, dirs [][2]int) []Square {
	for _, d := range dirs {
		for to := from.offset(d[0], d[1]); to.OnBoard(); to = to.offset(d[0], d[1]) {
			dst = append(dst, to)
		}
	}
	return dst
}

// clearPath reports whether every square strictly between from and to is
// empty. The squares must be aligned.
func clearPath(b *Board, from, to Square) bool {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for sq := from.offset(dr, dc); sq != to; sq = sq.offset(dr, dc) {
		if b.At(sq) != nil {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
