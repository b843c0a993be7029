package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionKey(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", PositionKey(b, White, nil))

	push := pawnPush(t, "e2", "e4", White)
	b = Executor{}.Apply(b, *push)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3", PositionKey(b, Black, push))

	single := pawnPush(t, "d7", "d6", Black)
	b = Executor{}.Apply(b, *single)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/3p4/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq -", PositionKey(b, White, single))
}

func TestCastlingRightsFollowHasMoved(t *testing.T) {
	tests := []struct {
		name  string
		moved []string
		want  string
	}{
		{"all", nil, "KQkq"},
		{"white king", []string{"e1"}, "kq"},
		{"h1 rook", []string{"h1"}, "Qkq"},
		{"a8 rook", []string{"a8"}, "KQk"},
		{"everything", []string{"e1", "e8"}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			for _, s := range tt.moved {
				b.At(sq(t, s)).HasMoved = true
			}
			assert.Equal(t, tt.want, castlingRights(b))
		})
	}
}

func TestCastlingRightsNeedPiecesAtHome(t *testing.T) {
	b, _ := boardFromFEN(t, "r3k3/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.Equal(t, "K", castlingRights(b))

	// a rook that arrives on a home square has moved
	b.Set(sq(t, "h8"), &Piece{Kind: Rook, Color: Black, HasMoved: true})
	assert.Equal(t, "K", castlingRights(b))
}
