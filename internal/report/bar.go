package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	filledCell = "█"
	emptyCell  = "░"
)

// scoreBar renders a 0-100 score as a fixed-width horizontal bar followed
// by the numeric value.
func (t Theme) scoreBar(label string, score, width int) string {
	var b strings.Builder

	if label != "" {
		b.WriteString(t.paint(t.Label, label))
		b.WriteString("  ")
	}

	barWidth := width - lipgloss.Width(b.String()) - 5 // " 100"
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * score / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	b.WriteString(t.paint(t.BarFilled, strings.Repeat(filledCell, filled)))
	b.WriteString(t.paint(t.BarEmpty, strings.Repeat(emptyCell, barWidth-filled)))
	fmt.Fprintf(&b, " %3d", score)
	return b.String()
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
