package chess

import "strings"

// Board is an 8x8 grid of optional pieces, indexed [row][col]. A board never
// shares pieces with another board; use Clone to hand one out.
type Board struct {
	Squares [8][8]*Piece `json:"board"`
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	for col := 0; col < 8; col++ {
		b.Squares[0][col] = &Piece{Kind: backRank[col], Color: White}
		b.Squares[1][col] = &Piece{Kind: Pawn, Color: White}
		b.Squares[6][col] = &Piece{Kind: Pawn, Color: Black}
		b.Squares[7][col] = &Piece{Kind: backRank[col], Color: Black}
	}
	return b
}

// EmptyBoard returns a board with no pieces, for setting up custom positions.
func EmptyBoard() *Board {
	return &Board{}
}

func (b *Board) At(sq Square) *Piece {
	return b.Squares[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p *Piece) {
	b.Squares[sq.Row][sq.Col] = p
}

// Place puts a new unmoved piece on sq and returns the board for chaining.
func (b *Board) Place(sq Square, kind Kind, color Color) *Board {
	b.Set(sq, &Piece{Kind: kind, Color: color})
	return b
}

func (b *Board) Clone() *Board {
	c := &Board{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c.Squares[row][col] = b.Squares[row][col].clone()
		}
	}
	return c
}

// KingSquare locates the king of the given color.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Squares[row][col]; p != nil && p.Kind == King && p.Color == color {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// Placement renders piece placement the way FEN does, rank 8 first.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Kind.letter(p.Color))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 7; row >= 0; row-- {
		sb.WriteByte(byte('1' + row))
		for col := 0; col < 8; col++ {
			sb.WriteByte(' ')
			if p := b.Squares[row][col]; p != nil {
				sb.WriteByte(p.Kind.letter(p.Color))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
