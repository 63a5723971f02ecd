// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/planboard/lib/celledit"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// withTrueColor renders in 24-bit colour for the rest of the test.
func withTrueColor(t *testing.T) {
	t.Helper()
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })
}

func TestStatusLineUsesNoticeForeground(t *testing.T) {
	withTrueColor(t)
	f := newFixture(t, admin, record("1", "a", "dana"))

	tests := []struct {
		kind celledit.NoticeKind
		want string
	}{
		// #dc2626 and #047857.
		{celledit.NoticeError, "38;2;220;38;38"},
		{celledit.NoticeSuccess, "38;2;4;120;87"},
	}
	for _, test := range tests {
		f.model.board.Notify(celledit.Notice{Kind: test.kind, Message: "הודעה"})
		status := f.model.renderStatus()
		if !strings.Contains(status, test.want) {
			t.Errorf("kind %v: status %q lacks foreground %s", test.kind, status, test.want)
		}
	}
}

func TestDeleteConfirmNameInErrorForeground(t *testing.T) {
	withTrueColor(t)
	confirm := &deleteConfirm{index: 0, name: "גשר"}
	modal := confirm.modal(tui.DefaultTheme)
	if len(modal.Body) != 2 || !strings.Contains(modal.Body[1], "38;2;220;38;38") {
		t.Errorf("record name not styled with the error foreground: %q", modal.Body)
	}
}
