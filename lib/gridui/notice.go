// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/planboard/lib/celledit"
)

// Toast messages shown after record mutations.
const (
	AddedMessage   = "הפרויקט נוסף בהצלחה"
	DeletedMessage = "הפרויקט נמחק בהצלחה"
)

// NoticeFadeDelay is how long a notice stays in the status line.
const NoticeFadeDelay = 3 * time.Second

// noticeFadeMsg clears the notice it was scheduled for.
type noticeFadeMsg struct {
	Sequence uint64
}

// noticeBoard holds the one notice currently on screen. It implements
// celledit.Notifier; the controller posts to it synchronously from
// inside Update, and the model schedules the fade afterwards. It is
// shared by pointer across model copies.
type noticeBoard struct {
	current  celledit.Notice
	showing  bool
	sequence uint64
	pending  bool
}

// Notify implements celledit.Notifier. A new notice replaces the
// current one.
func (board *noticeBoard) Notify(notice celledit.Notice) {
	board.current = notice
	board.showing = true
	board.sequence++
	board.pending = true
}

// Current returns the notice on screen, if any.
func (board *noticeBoard) Current() (celledit.Notice, bool) {
	return board.current, board.showing
}

// fadeCommand returns the tick that clears the latest notice, or nil
// when no notice was posted since the last call.
func (board *noticeBoard) fadeCommand(delay time.Duration) tea.Cmd {
	if !board.pending {
		return nil
	}
	board.pending = false
	sequence := board.sequence
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return noticeFadeMsg{Sequence: sequence}
	})
}

// fade clears the notice if sequence still identifies it.
func (board *noticeBoard) fade(sequence uint64) {
	if sequence == board.sequence {
		board.showing = false
	}
}
