package progress

import (
	"bufio"
	"io"
	"strings"
)

// Renderer rewrites a single terminal line in place by emitting the minimal
// backspace/overwrite/pad sequence that transforms the previously rendered
// text into the new text. It avoids the flicker of a full clear-and-reprint:
// when only the suffix of the line changes (the common case when a percentage
// or spinner glyph updates), only that suffix is rewritten.
//
// The renderer assumes the cursor sits at the end of the previously rendered
// text whenever Render is called, and that the line does not wrap. It relies
// only on the terminal moving the cursor one column left on receipt of a
// backspace character. Nothing else may write to the terminal's current line
// while a renderer owns it, or the record of what is visible goes stale.
//
// Renderer is not safe for concurrent use; callers serialize access (the bar
// does so under its render lock).
type Renderer struct {
	// buffer output so each render reaches the terminal as one write
	w    *bufio.Writer
	prev string
}

// NewRenderer creates a renderer that writes to w. The previous line starts
// empty, matching a terminal whose current line has nothing on it.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: bufio.NewWriter(w)}
}

// Render transforms the visible line into next and records next as the new
// previous line. Rendering the same text twice in a row emits nothing.
// Rendering the empty string erases the line and leaves the cursor at the
// start of it.
func (r *Renderer) Render(next string) error {
	prefix := commonPrefixLen(r.prev, next)

	// back up to the first differing column
	r.w.WriteString(strings.Repeat("\b", len(r.prev)-prefix))

	// overwrite from there with the new content
	r.w.WriteString(next[prefix:])

	// blank out any leftover tail of the old text, then return the cursor
	// to the end of the new text
	if overlap := len(r.prev) - len(next); overlap > 0 {
		r.w.WriteString(strings.Repeat(" ", overlap))
		r.w.WriteString(strings.Repeat("\b", overlap))
	}

	r.prev = next
	return r.w.Flush()
}

// commonPrefixLen returns the length of the longest common prefix of a and b.
func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
