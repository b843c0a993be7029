package chess

// IsAttacked reports whether any piece of color by attacks sq on b. Pawns
// attack their forward diagonals; every other kind attacks the squares its
// movement geometry reaches. King safety is not considered.
func IsAttacked(b *Board, sq Square, by Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Squares[row][col]
			if p == nil || p.Color != by {
				continue
			}
			from := Square{Row: row, Col: col}
			if p.Kind == Pawn {
				if sq.Row-from.Row == by.Forward() && abs(sq.Col-from.Col) == 1 {
					return true
				}
				continue
			}
			if RulesFor(p.Kind, by).IsValidMove(b, from, sq) {
				return true
			}
		}
	}
	return false
}

type attackKey struct {
	position string
	square   Square
	by       Color
}

// AttackCache memoizes attack queries by position identity. It lives as long
// as the game that owns it and is never cleared.
type AttackCache struct {
	entries map[attackKey]bool
}

func NewAttackCache() *AttackCache {
	return &AttackCache{entries: make(map[attackKey]bool)}
}

// IsAttacked answers IsAttacked for the position identified by key. b must be
// the position key was computed from.
func (c *AttackCache) IsAttacked(key string, b *Board, sq Square, by Color) bool {
	k := attackKey{position: key, square: sq, by: by}
	if v, ok := c.entries[k]; ok {
		return v
	}
	v := IsAttacked(b, sq, by)
	c.entries[k] = v
	return v
}

func (c *AttackCache) Len() int {
	return len(c.entries)
}

type passEntry struct {
	epoch    uint32
	attacked bool
}

// passCache memoizes attack queries for "the board right now" during a single
// generation pass. Its key has no position identity, so every mutation of the
// board must be followed by invalidate. It is allocated per pass and dropped
// at the end of it.
type passCache struct {
	epoch   uint32
	entries [64][2]passEntry
}

func newPassCache() *passCache {
	return &passCache{epoch: 1}
}

func (c *passCache) isAttacked(b *Board, sq Square, by Color) bool {
	e := &c.entries[sq.index()][by]
	if e.epoch == c.epoch {
		return e.attacked
	}
	e.epoch = c.epoch
	e.attacked = IsAttacked(b, sq, by)
	return e.attacked
}

func (c *passCache) invalidate() {
	c.epoch++
}
