// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal is the chrome around a dialog: a bordered box with a bold
// title line, body lines, and a faint footer of key hints. Body lines
// may carry their own styling; Modal pads them to a common width.
type Modal struct {
	Title  string
	Body   []string
	Footer string

	// InnerWidth is the content width inside border and padding.
	// Zero sizes the box to its widest line.
	InnerWidth int
}

// Offsets from a modal's anchor to its first body line and to the
// first content column (border, then one column of padding). Callers
// use them to hit-test clicks against body lines.
const (
	ModalBodyOffsetY    = 3
	ModalContentOffsetX = 2
)

// modalMargin is kept clear between the box and the screen edge when
// the screen is wide enough.
const modalMargin = 2

// Render returns the modal's lines and the top-left anchor that
// centres it on a screenWidth x screenHeight view.
func (modal Modal) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := modal.InnerWidth
	if innerWidth <= 0 {
		innerWidth = ansi.StringWidth(modal.Title)
		for _, line := range modal.Body {
			innerWidth = max(innerWidth, ansi.StringWidth(line))
		}
		innerWidth = max(innerWidth, ansi.StringWidth(modal.Footer))
	}
	// Border plus one column of padding each side.
	if limit := screenWidth - modalMargin*2 - 4; limit > 0 && innerWidth > limit {
		innerWidth = limit
	}

	background := lipgloss.NewStyle().Background(theme.PopupBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.PopupBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.PopupBackground)

	pad := func(line string) string {
		if ansi.StringWidth(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "")
		}
		return PadOverlayLine(line, innerWidth, background)
	}

	lines := []string{pad(titleStyle.Render(modal.Title)), pad("")}
	for _, line := range modal.Body {
		lines = append(lines, pad(line))
	}
	if modal.Footer != "" {
		lines = append(lines, pad(""), pad(footerStyle.Render(modal.Footer)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		BorderBackground(theme.PopupBackground).
		Render(strings.Join(lines, "\n"))

	rendered := strings.Split(box, "\n")
	width := 0
	if len(rendered) > 0 {
		width = ansi.StringWidth(rendered[0])
	}
	anchorX := max((screenWidth-width)/2, 0)
	anchorY := max((screenHeight-len(rendered))/2, 0)
	return rendered, anchorX, anchorY
}
