package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPotentialMoves(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		color Color
		from  string
		want  int
	}{
		{"knight in the corner", Knight, White, "a1", 2},
		{"knight in the centre", Knight, Black, "d4", 8},
		{"bishop in the corner", Bishop, White, "a1", 7},
		{"bishop in the centre", Bishop, White, "d4", 13},
		{"rook anywhere", Rook, Black, "d4", 14},
		{"queen in the centre", Queen, White, "d4", 27},
		{"king on the edge", King, White, "e1", 5},
		{"white pawn on start rank", Pawn, White, "e2", 4},
		{"white pawn on a-file", Pawn, White, "a3", 2},
		{"black pawn on start rank", Pawn, Black, "d7", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RulesFor(tt.kind, tt.color).PotentialMoves(sq(t, tt.from))
			assert.Len(t, got, tt.want)
			for _, s := range got {
				assert.True(t, s.OnBoard(), "%s off board", s)
			}
		})
	}
}

func TestRulesForIsShared(t *testing.T) {
	assert.Equal(t, RulesFor(Pawn, White), RulesFor(Pawn, White))
	assert.NotEqual(t, RulesFor(Pawn, White), RulesFor(Pawn, Black))
}

func TestIsValidMove(t *testing.T) {
	b, _ := boardFromFEN(t, "4k3/8/8/3p4/2P1n3/8/4P3/R3K2B w - - 0 1")
	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"rook along the rank", "a1", "d1", true},
		{"rook blocked by own king", "a1", "f1", false},
		{"rook up the file", "a1", "a8", true},
		{"rook not aligned", "a1", "b3", false},
		{"bishop diagonal clear", "h1", "e4", true},
		{"bishop diagonal blocked", "h1", "d5", false},
		{"pawn single step", "e2", "e3", true},
		{"pawn double step", "e2", "e4", false},
		{"pawn captures diagonally", "c4", "d5", true},
		{"pawn cannot move diagonally onto empty", "c4", "b5", false},
		{"black pawn captures toward rank one", "d5", "c4", true},
		{"black pawn steps toward rank one", "d5", "d4", true},
		{"knight hop", "e4", "c3", true},
		{"knight cannot move straight", "e4", "e2", false},
		{"king single step", "e1", "d2", true},
		{"king two steps", "e1", "g1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := sq(t, tt.from)
			p := b.At(from)
			require.NotNil(t, p)
			assert.Equal(t, tt.want, RulesFor(p.Kind, p.Color).IsValidMove(b, from, sq(t, tt.to)))
		})
	}
}

func TestPawnDoubleStepNeedsClearPath(t *testing.T) {
	b, _ := boardFromFEN(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	rules := RulesFor(Pawn, White)
	assert.False(t, rules.IsValidMove(b, sq(t, "e2"), sq(t, "e4")))
	assert.False(t, rules.IsValidMove(b, sq(t, "e2"), sq(t, "e3")))

	b.Set(sq(t, "e3"), nil)
	b.Place(sq(t, "e4"), Knight, Black)
	assert.False(t, rules.IsValidMove(b, sq(t, "e2"), sq(t, "e4")))
	assert.True(t, rules.IsValidMove(b, sq(t, "e2"), sq(t, "e3")))
}

func TestQueenCombinesRookAndBishop(t *testing.T) {
	b := EmptyBoard()
	from := sq(t, "d4")
	queen := RulesFor(Queen, White)
	for _, to := range queen.PotentialMoves(from) {
		want := RulesFor(Rook, White).IsValidMove(b, from, to) || RulesFor(Bishop, White).IsValidMove(b, from, to)
		assert.True(t, want, "%s", to)
		assert.True(t, queen.IsValidMove(b, from, to), "%s", to)
	}
	assert.False(t, queen.IsValidMove(b, from, sq(t, "e6")))
}
