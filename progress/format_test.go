package progress

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatLine_CellCounts(t *testing.T) {
	for i := 0; i <= 100; i++ {
		f := float64(i) / 100.0
		line := formatLine(f, "", defaultPercent, '-')

		filled := strings.Count(line, "#")
		dots := strings.Count(line, ".")
		// the percent text contributes one '.' of its own
		dots--

		want := int(f * barCells)
		if filled != want {
			t.Errorf("f=%v: filled cells = %d, want %d", f, filled, want)
		}
		if filled+dots != barCells {
			t.Errorf("f=%v: filled+empty = %d, want %d", f, filled+dots, barCells)
		}
	}
}

func TestFormatLine_Layout(t *testing.T) {
	tests := []struct {
		fraction   float64
		annotation string
		glyph      rune
		want       string
	}{
		{0, "", '-', "[....................] 0.0% -"},
		{0.2, "", '/', "[####................] 20.0% /"},
		{1.0, "done", '|', "[####################] 100.0% done |"},
		{-0.5, "", '-', "[....................] -50.0% -"},
	}

	for _, tt := range tests {
		got := formatLine(tt.fraction, tt.annotation, defaultPercent, tt.glyph)
		if got != tt.want {
			t.Errorf("formatLine(%v, %q) = %q, want %q", tt.fraction, tt.annotation, got, tt.want)
		}
	}
}

func TestFormatLine_CustomPercentFormatter(t *testing.T) {
	whole := func(f float64) string { return fmt.Sprintf("%d%%", int(f*100)) }
	got := formatLine(0.5, "", whole, '-')
	want := "[##########..........] 50% -"
	if got != want {
		t.Errorf("formatLine with custom formatter = %q, want %q", got, want)
	}
}

func TestSpinner_CycleAndWrap(t *testing.T) {
	s := spinner{glyphs: defaultGlyphs}

	if s.current() != '-' {
		t.Errorf("initial glyph = %q, want '-'", s.current())
	}

	want := []rune{'\\', '|', '/', '-', '\\'}
	for i, w := range want {
		if got := s.advance(); got != w {
			t.Errorf("advance %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestState_LastWriteWins(t *testing.T) {
	var s state

	if s.annotationText() != "" {
		t.Error("annotation must start empty")
	}
	if s.fraction() != 0 {
		t.Error("fraction must start at zero")
	}

	s.setFraction(0.3)
	s.setAnnotation("a")
	s.setFraction(0.6)
	s.setAnnotation("b")

	if got := s.fraction(); got != 0.6 {
		t.Errorf("fraction = %v, want 0.6", got)
	}
	if got := s.annotationText(); got != "b" {
		t.Errorf("annotation = %q, want %q", got, "b")
	}
}
