package chess

// enPassantRow is the row a pawn of color must stand on to capture en passant.
func enPassantRow(c Color) int {
	if c == White {
		return 4
	}
	return 3
}

// CanEnPassant reports whether the pawn on from may capture en passant onto
// to, given the move played immediately before. Nothing older than last is
// consulted.
func CanEnPassant(b *Board, from, to Square, last *Move) bool {
	if last == nil || !last.IsDoublePawnPush() {
		return false
	}
	pawn := b.At(from)
	if pawn == nil || pawn.Kind != Pawn || pawn.Color == last.Piece.Color {
		return false
	}
	if from.Row != enPassantRow(pawn.Color) || last.To.Row != from.Row {
		return false
	}
	if abs(from.Col-last.To.Col) != 1 {
		return false
	}
	if to != from.offset(pawn.Color.Forward(), last.To.Col-from.Col) || b.At(to) != nil {
		return false
	}
	victim := b.At(last.To)
	return victim != nil && victim.Kind == Pawn && victim.Color != pawn.Color
}

// enPassantMove builds the capture record for a pawn on from.
func enPassantMove(b *Board, from, to Square) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     *b.At(from),
		Captured:  b.At(enPassantVictim(from, to)).clone(),
		EnPassant: true,
	}
}

// enPassantVictim is the square of the pawn removed by the capture: the
// capturer's row, the destination's column.
func enPassantVictim(from, to Square) Square {
	return Sq(from.Row, to.Col)
}

// enPassantTarget is the square a pawn skipped over with its double advance,
// if last was one.
func enPassantTarget(last *Move) (Square, bool) {
	if last == nil || !last.IsDoublePawnPush() {
		return Square{}, false
	}
	return Sq((last.From.Row+last.To.Row)/2, last.To.Col), true
}

func applyEnPassant(b *Board, m Move) {
	pawn := b.At(m.From)
	b.Set(m.From, nil)
	b.Set(enPassantVictim(m.From, m.To), nil)
	b.Set(m.To, pawn)
	pawn.HasMoved = true
}

func reverseEnPassant(b *Board, m Move) {
	pawn := b.At(m.To)
	b.Set(m.To, nil)
	b.Set(m.From, pawn)
	pawn.HasMoved = m.Piece.HasMoved
	b.Set(enPassantVictim(m.From, m.To), m.Captured.clone())
}
