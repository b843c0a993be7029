package model

import "github.com/benbeisheim/chess-backend/internal/chess"

// WSMove is a move request as clients send it, e.g.
// {"from":"e7","to":"e8","promotion":"knight"}. Promotion may be omitted for
// moves that do not promote.
type WSMove struct {
	From      chess.Square `json:"from"`
	To        chess.Square `json:"to"`
	Promotion chess.Kind   `json:"promotion,omitempty"`
}

func (m WSMove) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoKind {
		s += "=" + m.Promotion.String()
	}
	return s
}
