// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/planboard/lib/tui"
)

// deleteConfirm is the open delete confirmation for one row.
type deleteConfirm struct {
	// index is the store index of the row to delete.
	index int
	name  string
}

func (confirm *deleteConfirm) modal(theme tui.Theme) tui.Modal {
	nameStyle := lipgloss.NewStyle().Bold(true).
		Foreground(theme.NoticeError.Foreground).
		Background(theme.PopupBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(theme.PopupForeground).
		Background(theme.PopupBackground)
	return tui.Modal{
		Title: "מחיקת פרויקט",
		Body: []string{
			textStyle.Render("האם למחוק את הפרויקט"),
			nameStyle.Render(tui.Excerpt(confirm.name, 40)),
		},
		Footer: "y confirm  n/Esc cancel",
	}
}
