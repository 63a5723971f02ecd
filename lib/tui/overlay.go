// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetSGR = "\x1b[0m"

// SpliceOverlay draws overlay onto view with its top-left corner at
// column x of line y. Overlay lines that fall outside the view are
// dropped. Cutting is ANSI-aware, so the styling of the view on
// either side of the overlay is kept.
func SpliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	width := ansi.StringWidth(overlay[0])
	for offset, insert := range overlay {
		row := y + offset
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = spliceLine(lines[row], insert, x, width)
	}
	return strings.Join(lines, "\n")
}

// spliceLine replaces width cells of base starting at column x.
func spliceLine(base, insert string, x, width int) string {
	var line strings.Builder
	if x > 0 {
		line.WriteString(ansi.Truncate(base, x, ""))
	}
	line.WriteString(resetSGR)
	line.WriteString(insert)
	line.WriteString(resetSGR)
	if end := x + width; end < ansi.StringWidth(base) {
		line.WriteString(ansi.TruncateLeft(base, end, ""))
	}
	return line.String()
}

// PadOverlayLine frames styled content for a box innerWidth cells
// wide: one cell of margin on the left, and enough on the right to
// reach innerWidth plus one. Margins take the background style.
func PadOverlayLine(content string, innerWidth int, background lipgloss.Style) string {
	fill := max(innerWidth-ansi.StringWidth(content), 0)
	return background.Render(" ") + content + background.Render(strings.Repeat(" ", fill+1))
}
