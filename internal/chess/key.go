package chess

import "strings"

// PositionKey is the canonical identity of a position for repetition
// purposes: placement, side to move, castling rights and en passant target.
// Castling rights are derived from the HasMoved flags of kings and rooks on
// their home squares.
func PositionKey(b *Board, toMove Color, last *Move) string {
	var sb strings.Builder
	sb.Grow(90)
	sb.WriteString(b.Placement())
	sb.WriteByte(' ')
	sb.WriteByte(toMove.String()[0])
	sb.WriteByte(' ')
	sb.WriteString(castlingRights(b))
	sb.WriteByte(' ')
	if sq, ok := enPassantTarget(last); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

func castlingRights(b *Board) string {
	var rights []byte
	for _, c := range []Color{White, Black} {
		row := c.HomeRow()
		king := b.At(Sq(row, kingHomeCol))
		if king == nil || king.Kind != King || king.Color != c || king.HasMoved {
			continue
		}
		for _, side := range []CastleSide{Kingside, Queenside} {
			rook := b.At(Sq(row, castleGeometries[side].rookFrom))
			if rook == nil || rook.Kind != Rook || rook.Color != c || rook.HasMoved {
				continue
			}
			l := byte('k')
			if side == Queenside {
				l = 'q'
			}
			if c == White {
				l -= 'a' - 'A'
			}
			rights = append(rights, l)
		}
	}
	if len(rights) == 0 {
		return "-"
	}
	return string(rights)
}
