package progress

// defaultGlyphs is the classic console spinner cycle.
var defaultGlyphs = []rune{'-', '\\', '|', '/'}

// spinner is a cyclic cursor into a fixed glyph table. It is advanced only by
// the tick loop (single writer), so no synchronization is needed.
type spinner struct {
	glyphs []rune
	index  int
}

// advance steps to the next glyph, wrapping after the last one, and returns
// the glyph now under the cursor.
func (s *spinner) advance() rune {
	s.index = (s.index + 1) % len(s.glyphs)
	return s.glyphs[s.index]
}

// current returns the glyph under the cursor without advancing.
func (s *spinner) current() rune {
	return s.glyphs[s.index]
}
