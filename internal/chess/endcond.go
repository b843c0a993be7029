package chess

// EndConditions turns check status, legal-move availability, the half-move
// clock, repetition counts and material into the terminal flags of a State.
type EndConditions struct {
	gen   *Generator
	cache *AttackCache
}

func NewEndConditions(gen *Generator, cache *AttackCache) *EndConditions {
	return &EndConditions{gen: gen, cache: cache}
}

// InCheck reports whether color's king on b is attacked. st supplies the
// position identity for the persistent cache.
func (e *EndConditions) InCheck(b *Board, color Color, st *State) bool {
	ksq, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	return e.cache.IsAttacked(st.Key(b), b, ksq, color.Opponent())
}

// Evaluate recomputes every terminal flag of st for the side to move on b.
func (e *EndConditions) Evaluate(b *Board, st *State) {
	check := e.InCheck(b, st.Turn, st)
	stuck := !e.gen.HasLegalMove(b, st.Turn, st)

	st.Check = check
	st.Checkmate = check && stuck
	st.Stalemate = !check && stuck
	st.DrawReason = NoDraw
	if !st.Checkmate {
		st.DrawReason = DrawByRule(b, st)
	}
	st.Draw = st.DrawReason != NoDraw
}

// DrawByRule returns the first draw rule that applies to b under st.
func DrawByRule(b *Board, st *State) DrawReason {
	switch {
	case st.HalfMoveClock >= fiftyMoveLimit:
		return FiftyMoveRule
	case st.Repetitions(b) >= 3:
		return ThreefoldRepetition
	case HasInsufficientMaterial(b):
		return InsufficientMaterial
	}
	return NoDraw
}

// HasInsufficientMaterial recognizes king vs king, king and one minor piece
// vs king, and king and bishop vs king and bishop with both bishops on the
// same square color. Every other balance, including two knights or bishop and
// knight against a bare king, is treated as sufficient.
func HasInsufficientMaterial(b *Board) bool {
	type minor struct {
		kind  Kind
		color Color
		sq    Square
	}
	var minors []minor
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p == nil {
				continue
			}
			switch p.Kind {
			case King:
			case Knight, Bishop:
				minors = append(minors, minor{kind: p.Kind, color: p.Color, sq: Sq(row, col)})
			default:
				return false
			}
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, c := minors[0], minors[1]
		return a.kind == Bishop && c.kind == Bishop && a.color != c.color && a.sq.light() == c.sq.light()
	}
	return false
}
