// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// ScrollThumb positions the thumb of a track height rows tall over a
// list of total rows viewed height at a time from offset. A list that
// fits gets a thumb spanning the whole track.
func ScrollThumb(height, total, offset int) (start, length int) {
	if height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, height
	}
	length = max(height*height/total, 1)
	travel := height - length
	start = offset * travel / (total - height)
	return min(max(start, 0), travel), length
}

// ScrollbarColumn renders a one-cell-wide scrollbar, one string per
// row.
func ScrollbarColumn(theme Theme, height, total, offset int) []string {
	if height <= 0 {
		return nil
	}
	track := lipgloss.NewStyle().Foreground(theme.FaintText).Render("│")
	thumb := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("┃")

	start, length := ScrollThumb(height, total, offset)
	column := make([]string, height)
	for row := range column {
		if row >= start && row < start+length {
			column[row] = thumb
		} else {
			column[row] = track
		}
	}
	return column
}
