package chess

import "fmt"

type CastleSide uint8

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "kingside"
	case Queenside:
		return "queenside"
	}
	return ""
}

func (s CastleSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CastleSide) UnmarshalText(text []byte) error {
	for _, side := range []CastleSide{NoCastle, Kingside, Queenside} {
		if side.String() == string(text) {
			*s = side
			return nil
		}
	}
	return fmt.Errorf("chess: unknown castle side %q", text)
}

// Move is the complete record of one ply. Piece is a snapshot of the mover
// taken before the move, so HasMoved can be restored on reversal.
type Move struct {
	From      Square     `json:"from"`
	To        Square     `json:"to"`
	Piece     Piece      `json:"piece"`
	Captured  *Piece     `json:"captured,omitempty"`
	EnPassant bool       `json:"enPassant,omitempty"`
	Castling  CastleSide `json:"castling,omitempty"`
	Promotion Kind       `json:"promotion,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// IsDoublePawnPush reports whether the move advanced a pawn two squares.
func (m Move) IsDoublePawnPush() bool {
	d := m.To.Row - m.From.Row
	return m.Piece.Kind == Pawn && (d == 2 || d == -2)
}

// Promote returns a copy of a promotion move resolved to kind.
func (m Move) Promote(kind Kind) (Move, error) {
	if !m.IsPromotion() {
		return m, fmt.Errorf("%w: %s does not promote", ErrInvalidPromotion, m)
	}
	if !promotable(kind) {
		return m, fmt.Errorf("%w: %s", ErrInvalidPromotion, kind)
	}
	m.Promotion = kind
	return m, nil
}

// String renders coordinate notation, e.g. e2e4 or e7e8q.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.letter(Black))
	}
	return s
}
