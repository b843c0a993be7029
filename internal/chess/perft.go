package chess

var perftPromotions = [4]Kind{Queen, Rook, Bishop, Knight}

// Perft counts the leaf nodes of the legal move tree of the given depth.
// Each promotion counts once per piece kind, so totals match the published
// perft tables.
func Perft(b *Board, toMove Color, last *Move, depth int) int {
	if depth <= 0 {
		return 1
	}
	return perft(NewGenerator(), b.Clone(), toMove, last, depth)
}

func perft(gen *Generator, b *Board, toMove Color, last *Move, depth int) int {
	nodes := 0
	for _, m := range gen.generate(b, toMove, last, false) {
		if !m.IsPromotion() {
			nodes += perftChild(gen, b, toMove, m, depth)
			continue
		}
		for _, k := range perftPromotions {
			m.Promotion = k
			nodes += perftChild(gen, b, toMove, m, depth)
		}
	}
	return nodes
}

func perftChild(gen *Generator, b *Board, toMove Color, m Move, depth int) int {
	if depth == 1 {
		return 1
	}
	makeMove(b, m)
	n := perft(gen, b, toMove.Opponent(), &m, depth-1)
	unmakeMove(b, m)
	return n
}
