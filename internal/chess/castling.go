package chess

type castleGeometry struct {
	kingTo   int
	rookFrom int
	rookTo   int
	between  []int // squares that must be empty
	kingPath []int // squares that must not be attacked, king start included
}

var castleGeometries = map[CastleSide]castleGeometry{
	Kingside:  {kingTo: 6, rookFrom: 7, rookTo: 5, between: []int{5, 6}, kingPath: []int{4, 5, 6}},
	Queenside: {kingTo: 2, rookFrom: 0, rookTo: 3, between: []int{1, 2, 3}, kingPath: []int{4, 3, 2}},
}

const kingHomeCol = 4

// CanCastle reports whether color may castle to side on b. attacked answers
// whether a square is attacked by the opponent.
func CanCastle(b *Board, color Color, side CastleSide, attacked func(Square) bool) bool {
	g, ok := castleGeometries[side]
	if !ok {
		return false
	}
	row := color.HomeRow()
	king := b.At(Sq(row, kingHomeCol))
	if king == nil || king.Kind != King || king.Color != color || king.HasMoved {
		return false
	}
	rook := b.At(Sq(row, g.rookFrom))
	if rook == nil || rook.Kind != Rook || rook.Color != color || rook.HasMoved {
		return false
	}
	for _, col := range g.between {
		if b.At(Sq(row, col)) != nil {
			return false
		}
	}
	for _, col := range g.kingPath {
		if attacked(Sq(row, col)) {
			return false
		}
	}
	return true
}

// castleMove builds the move record for a castling king move. The caller has
// already checked CanCastle.
func castleMove(b *Board, color Color, side CastleSide) Move {
	row := color.HomeRow()
	from := Sq(row, kingHomeCol)
	return Move{
		From:     from,
		To:       Sq(row, castleGeometries[side].kingTo),
		Piece:    *b.At(from),
		Castling: side,
	}
}

func applyCastle(b *Board, m Move) {
	g := castleGeometries[m.Castling]
	row := m.From.Row
	king, rook := b.At(m.From), b.At(Sq(row, g.rookFrom))
	b.Set(m.From, nil)
	b.Set(Sq(row, g.rookFrom), nil)
	b.Set(m.To, king)
	b.Set(Sq(row, g.rookTo), rook)
	king.HasMoved = true
	rook.HasMoved = true
}

// reverseCastle undoes applyCastle. Both pieces were unmoved before castling,
// which can only happen once per king and rook, so HasMoved resets to false.
func reverseCastle(b *Board, m Move) {
	g := castleGeometries[m.Castling]
	row := m.From.Row
	king, rook := b.At(m.To), b.At(Sq(row, g.rookTo))
	b.Set(m.To, nil)
	b.Set(Sq(row, g.rookTo), nil)
	b.Set(m.From, king)
	b.Set(Sq(row, g.rookFrom), rook)
	king.HasMoved = false
	rook.HasMoved = false
}
