package elements

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay paints top over base at cell offset (x, y). Both inputs are
// ANSI-styled blocks; splicing is width-aware so styled runs survive on both
// sides of the overlay.
func Overlay(base, top string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")

	for i, topLine := range topLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], topLine, x)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine replaces the cells [x, x+width(top)) of a base line with top.
func spliceLine(base, top string, x int) string {
	topWidth := ansi.StringWidth(top)
	baseWidth := ansi.StringWidth(base)

	left := ansi.Truncate(base, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	var right string
	if x+topWidth < baseWidth {
		right = ansi.TruncateLeft(base, x+topWidth, "")
	}
	return left + top + right
}
