package chess

// promotionRow is the opponent's back rank for a pawn of color c.
func promotionRow(c Color) int {
	return c.Opponent().HomeRow()
}

// promotes reports whether a pawn of color c arriving on to must promote.
func promotes(kind Kind, c Color, to Square) bool {
	return kind == Pawn && to.Row == promotionRow(c)
}

func promotable(k Kind) bool {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return true
	}
	return false
}

// applyPromotion swaps the pawn standing on m.To for the promoted kind. It
// runs after the pawn has been relocated.
func applyPromotion(b *Board, m Move) {
	b.At(m.To).Kind = m.Promotion
}

// reversePromotion turns the promoted piece back into a pawn. It must run
// before any other reversal step, since those act on the pawn.
func reversePromotion(b *Board, m Move) {
	b.At(m.To).Kind = Pawn
}
