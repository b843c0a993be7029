package chess

// Executor applies and reverses moves. It has no state of its own.
type Executor struct{}

// Apply commits m to a private copy of b and returns the copy; b is untouched.
func (Executor) Apply(b *Board, m Move) *Board {
	next := b.Clone()
	makeMove(next, m)
	return next
}

// Probe applies m to b in place, asks test about the resulting board, then
// reverses m whatever the answer. b must not be read by anything else until
// Probe returns.
func (Executor) Probe(b *Board, m Move, test func(*Board) bool) bool {
	makeMove(b, m)
	defer unmakeMove(b, m)
	return test(b)
}

func makeMove(b *Board, m Move) {
	switch {
	case m.Castling != NoCastle:
		applyCastle(b, m)
	case m.EnPassant:
		applyEnPassant(b, m)
	default:
		piece := b.At(m.From)
		b.Set(m.From, nil)
		b.Set(m.To, piece)
		piece.HasMoved = true
		if m.IsPromotion() {
			applyPromotion(b, m)
		}
	}
}

func unmakeMove(b *Board, m Move) {
	if m.IsPromotion() {
		reversePromotion(b, m)
	}
	switch {
	case m.Castling != NoCastle:
		reverseCastle(b, m)
	case m.EnPassant:
		reverseEnPassant(b, m)
	default:
		piece := b.At(m.To)
		b.Set(m.To, m.Captured.clone())
		b.Set(m.From, piece)
		piece.HasMoved = m.Piece.HasMoved
	}
}
