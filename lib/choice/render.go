// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package choice

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/planboard/lib/tui"
)

// RenderTrigger renders the trigger at exactly width columns: the
// label (sanitized, truncated as needed) followed by an arrow showing
// whether the popup is open.
func (enhanced *Enhanced) RenderTrigger(width int) string {
	if width <= 0 {
		return ""
	}
	arrow := " ▾"
	if enhanced.open {
		arrow = " ▴"
	}
	labelWidth := max(width-ansi.StringWidth(arrow), 0)
	label := tui.Excerpt(enhanced.triggerLabel, labelWidth)
	content := label + strings.Repeat(" ", max(labelWidth-ansi.StringWidth(label), 0)) + arrow
	content = ansi.Truncate(content, width, "")

	theme := enhanced.page.theme
	style := lipgloss.NewStyle().Foreground(theme.NormalText).Background(theme.EditingBackground)
	if enhanced.triggerColored {
		style = enhanced.triggerColors.Style()
	}
	return style.Render(content)
}

// PopupWidth returns the visible width of every popup line. Layout
// per line: space, selection marker, space, colour dot, space, label,
// space.
func (enhanced *Enhanced) PopupWidth() int {
	widest := 0
	for _, item := range enhanced.items {
		widest = max(widest, ansi.StringWidth(tui.Sanitize(item.Label)))
	}
	return 6 + widest
}

// RenderPopup renders one line per option for overlay splicing. The
// selected entry is marked and bold; coloured entries carry their
// value colours and a dot in their foreground colour.
func (enhanced *Enhanced) RenderPopup() []string {
	theme := enhanced.page.theme
	innerWidth := enhanced.PopupWidth() - 2
	plain := lipgloss.NewStyle().Foreground(theme.PopupForeground).Background(theme.PopupBackground)

	lines := make([]string, 0, len(enhanced.items))
	for _, item := range enhanced.items {
		style := plain
		if item.Colored {
			style = item.Colors.Style()
		}
		if item.Selected {
			style = style.Bold(true)
		}

		marker := " "
		if item.Selected {
			marker = ">"
		}
		dot := " "
		if item.Colored {
			dot = "●"
		}
		content := marker + " " + dot + " " + tui.Sanitize(item.Label)
		lines = append(lines, tui.PadOverlayLine(style.Render(content), innerWidth, style))
	}
	return lines
}

// OptionAtRow maps a row offset within the popup to an option index,
// or -1 outside the popup.
func (enhanced *Enhanced) OptionAtRow(row int) int {
	if row < 0 || row >= len(enhanced.items) {
		return -1
	}
	return row
}
