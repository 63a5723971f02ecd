// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celledit

// NoticeKind classifies a user-facing notice.
type NoticeKind int

const (
	NoticeError NoticeKind = iota
	NoticeSuccess
)

// Notice is a message for the user, shown by the grid's notice area.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier receives user-facing notices.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (function NotifierFunc) Notify(notice Notice) {
	function(notice)
}
