package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// terminal is a model of a single terminal line: a cell buffer plus a cursor.
// Applying the renderer's output to it must always reproduce the target text.
type terminal struct {
	cells  []byte
	cursor int
}

func (term *terminal) apply(output string) {
	for i := 0; i < len(output); i++ {
		c := output[i]
		if c == '\b' {
			if term.cursor > 0 {
				term.cursor--
			}
			continue
		}
		if term.cursor < len(term.cells) {
			term.cells[term.cursor] = c
		} else {
			term.cells = append(term.cells, c)
		}
		term.cursor++
	}
}

func (term *terminal) visible() string {
	return strings.TrimRight(string(term.cells), " ")
}

func TestRenderer_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		next     string
	}{
		{"both empty", "", ""},
		{"from empty", "", "[##..................] 10.0% -"},
		{"to empty", "[##########..........] 50.0% |", ""},
		{"equal", "[####................] 20.0% /", "[####................] 20.0% /"},
		{"next extends previous", "[##", "[##.."},
		{"previous extends next", "[##..", "[##"},
		{"disjoint", "abcdef", "xyz"},
		{"suffix change", "[####....] 20.0% |", "[####....] 20.0% /"},
		{"shrinking with shared prefix", "[####] 100.0% finishing up -", "[####] 100.0% \\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(&buf)

			require.NoError(t, r.Render(tt.previous))
			term := &terminal{}
			term.apply(buf.String())
			require.Equal(t, tt.previous, term.visible(), "model out of sync after first render")

			buf.Reset()
			// renderer still writes to the same buffer via its bufio layer
			require.NoError(t, r.Render(tt.next))
			term.apply(buf.String())

			assert.Equal(t, tt.next, term.visible())
			assert.Equal(t, len(tt.next), term.cursor, "cursor must sit at the end of the new text")
		})
	}
}

func TestRenderer_IdenticalLineEmitsNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Render("[####....] 20.0% -"))
	buf.Reset()

	require.NoError(t, r.Render("[####....] 20.0% -"))
	assert.Empty(t, buf.String(), "re-rendering an unchanged line must emit nothing")
}

func TestRenderer_SpinnerGlyphChange(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Render("[####....] 20.0% |"))
	buf.Reset()

	require.NoError(t, r.Render("[####....] 20.0% /"))
	assert.Equal(t, "\b/", buf.String(), "only the glyph differs, so one backspace and one new char")
}

func TestRenderer_EraseToEmpty(t *testing.T) {
	prev := "[##########] 100.0% done -"

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	require.NoError(t, r.Render(prev))
	buf.Reset()

	require.NoError(t, r.Render(""))

	n := len(prev)
	want := strings.Repeat("\b", n) + strings.Repeat(" ", n) + strings.Repeat("\b", n)
	assert.Equal(t, want, buf.String())

	term := &terminal{}
	term.apply(prev)
	term.apply(buf.String())
	assert.Equal(t, "", term.visible())
	assert.Equal(t, 0, term.cursor, "cursor must end at column 0")
}

func TestCommonPrefixLen(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 0},
		{"", "abc", 0},
		{"abc", "abc", 3},
		{"abc", "abd", 2},
		{"abc", "abcdef", 3},
		{"xyz", "abc", 0},
	}
	for _, tt := range tests {
		if got := commonPrefixLen(tt.a, tt.b); got != tt.want {
			t.Errorf("commonPrefixLen(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
