package progress

import (
	"fmt"
	"strings"
)

// barCells is the width of the bracketed bar in cells.
const barCells = 20

// PercentFormatter produces the textual form of a fraction for display.
// Implementations must be pure and fast; they are called once per tick while
// the render lock is held.
type PercentFormatter func(fraction float64) string

// defaultPercent formats with one decimal place and a % suffix, e.g. "42.5%".
func defaultPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// formatLine builds the full display line:
//
//	[####................] 20.0% copying files -
//
// Filled cells are floor(fraction*20), truncated toward zero, so a negative
// fraction renders an empty bar rather than failing. Fractions above 1.0 are
// rejected at report time and never reach here.
func formatLine(fraction float64, annotation string, percent PercentFormatter, glyph rune) string {
	filled := int(fraction * barCells)
	if filled < 0 {
		filled = 0
	}

	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat("#", filled))
	sb.WriteString(strings.Repeat(".", barCells-filled))
	sb.WriteString("] ")
	sb.WriteString(percent(fraction))
	if annotation != "" {
		sb.WriteByte(' ')
		sb.WriteString(annotation)
	}
	sb.WriteByte(' ')
	sb.WriteRune(glyph)
	return sb.String()
}
