package chess

import (
	"fmt"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
		long  bool
	}{
		{"start depth 1", startFEN, 1, 20, false},
		{"start depth 2", startFEN, 2, 400, false},
		{"start depth 3", startFEN, 3, 8902, false},
		{"start depth 4", startFEN, 4, 197281, true},
		{"kiwipete depth 1", kiwipeteFEN, 1, 48, false},
		{"kiwipete depth 2", kiwipeteFEN, 2, 2039, false},
		{"kiwipete depth 3", kiwipeteFEN, 3, 97862, true},
		{"position 3 depth 1", position3FEN, 1, 14, false},
		{"position 3 depth 2", position3FEN, 2, 191, false},
		{"position 3 depth 3", position3FEN, 3, 2812, false},
		{"position 3 depth 4", position3FEN, 4, 43238, true},
		{"position 4 depth 1", position4FEN, 1, 6, false},
		{"position 4 depth 2", position4FEN, 2, 264, false},
		{"position 4 depth 3", position4FEN, 3, 9467, true},
		{"position 5 depth 1", position5FEN, 1, 44, false},
		{"position 5 depth 2", position5FEN, 2, 1486, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.long && testing.Short() {
				t.Skip("skipping deep perft in short mode")
			}
			b, turn := boardFromFEN(t, tt.fen)
			assert.Equal(t, tt.want, Perft(b, turn, nil, tt.depth))
		})
	}
}

func TestPerftDepthZero(t *testing.T) {
	assert.Equal(t, 1, Perft(NewBoard(), White, nil, 0))
}

// dragontoothPerft is an independent bitboard reference.
func dragontoothPerft(b *dragontoothmg.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerftMatchesDragontooth(t *testing.T) {
	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/P1k5/K7/8/8/8/8/8 w - - 0 1",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"8/8/1k6/2b5/2pP4/8/5K2/8 b - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, turn := boardFromFEN(t, fen)
			ref := dragontoothmg.ParseFen(fen)
			assert.Equal(t, dragontoothPerft(&ref, depth), Perft(b, turn, nil, depth), fmt.Sprintf("depth %d", depth))
		})
	}
}
