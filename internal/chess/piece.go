package chess

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta a pawn of this color advances by.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRow is the back rank of the color.
func (c Color) HomeRow() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("chess: unknown color %q", text)
	}
	return nil
}

// Kind is the closed set of piece kinds. NoKind only ever appears as the
// promotion field of a move that does not promote.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("chess: unknown piece kind %q", text)
}

// letter returns the FEN-style letter, upper case for White.
func (k Kind) letter(c Color) byte {
	l := " pnbrqk"[k]
	if c == White {
		l -= 'a' - 'A'
	}
	return l
}

type Piece struct {
	Kind     Kind  `json:"type"`
	Color    Color `json:"color"`
	HasMoved bool  `json:"hasMoved"`
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Kind.String()
}

func (p *Piece) clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
