package chess

import "fmt"

// Square addresses a board cell. Row 0 is White's back rank, Col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// ParseSquare reads algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("chess: invalid square %q", s)
	}
	return Square{Row: int(s[1] - '1'), Col: int(s[0] - 'a')}, nil
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// light reports whether the square is a light square.
func (s Square) light() bool {
	return (s.Row+s.Col)%2 == 1
}

func (s Square) index() int {
	return s.Row*8 + s.Col
}

func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{byte('a' + s.Col), byte('1' + s.Row)})
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
