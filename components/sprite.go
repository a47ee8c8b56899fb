package components

// Sprite is a rectangular block of glyph rows. A space is transparent.
type Sprite []string

// Width returns the length of the widest row.
func (s Sprite) Width() int {
	w := 0
	for _, row := range s {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int { return len(s) }

// Clone returns a copy of the sprite.
func (s Sprite) Clone() Sprite {
	out := make(Sprite, len(s))
	copy(out, s)
	return out
}

// Mirror returns the sprite with every row reversed.
func (s Sprite) Mirror() Sprite {
	out := make(Sprite, len(s))
	for i, row := range s {
		r := []rune(row)
		for a, b := 0, len(r)-1; a < b; a, b = a+1, b-1 {
			r[a], r[b] = r[b], r[a]
		}
		out[i] = string(r)
	}
	return out
}
