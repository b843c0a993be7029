package chess

// Generator enumerates legal moves. It is stateless; every call allocates its
// own pass cache.
type Generator struct {
	exec Executor
}

func NewGenerator() *Generator {
	return &Generator{}
}

// LegalMoves returns every legal move for color on b. Only st.LastMove is
// consulted, for en passant; st may be nil. Moves come in rank-major,
// file-minor order of the moving piece, castling and en passant last.
// Promotions are resolved to Queen until the caller picks a piece.
func (g *Generator) LegalMoves(b *Board, color Color, st *State) []Move {
	return g.generate(b, color, lastMoveOf(st), false)
}

// HasLegalMove reports whether color has at least one legal move.
func (g *Generator) HasLegalMove(b *Board, color Color, st *State) bool {
	return len(g.generate(b, color, lastMoveOf(st), true)) > 0
}

func lastMoveOf(st *State) *Move {
	if st == nil {
		return nil
	}
	return st.LastMove
}

func (g *Generator) generate(b *Board, color Color, last *Move, firstOnly bool) []Move {
	pass := newPassCache()
	opponent := color.Opponent()

	kingSafe := func(after *Board) bool {
		pass.invalidate()
		ksq, ok := after.KingSquare(color)
		if !ok {
			return true
		}
		return !pass.isAttacked(after, ksq, opponent)
	}
	legal := func(m Move) bool {
		ok := g.exec.Probe(b, m, kingSafe)
		pass.invalidate()
		return ok
	}

	moves := make([]Move, 0, 40)
	emit := func(m Move) bool {
		moves = append(moves, m)
		return firstOnly
	}

	targets := make([]Square, 0, 28)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p == nil || p.Color != color {
				continue
			}
			from := Square{Row: row, Col: col}
			rules := RulesFor(p.Kind, color)
			targets = rules.AppendPotentialMoves(targets[:0], from)
			for _, to := range targets {
				if t := b.At(to); t != nil && t.Color == color {
					continue
				}
				if !rules.IsValidMove(b, from, to) {
					continue
				}
				m := Move{From: from, To: to, Piece: *p, Captured: b.At(to).clone()}
				if promotes(p.Kind, color, to) {
					m.Promotion = Queen
				}
				if legal(m) && emit(m) {
					return moves
				}
			}
		}
	}

	attacked := func(sq Square) bool {
		return pass.isAttacked(b, sq, opponent)
	}
	for _, side := range [2]CastleSide{Kingside, Queenside} {
		if CanCastle(b, color, side, attacked) && emit(castleMove(b, color, side)) {
			return moves
		}
	}

	if last != nil && last.IsDoublePawnPush() {
		for _, dc := range [2]int{-1, 1} {
			from := last.To.offset(0, dc)
			if !from.OnBoard() {
				continue
			}
			to := from.offset(color.Forward(), -dc)
			if !CanEnPassant(b, from, to, last) {
				continue
			}
			if m := enPassantMove(b, from, to); legal(m) && emit(m) {
				return moves
			}
		}
	}
	return moves
}
