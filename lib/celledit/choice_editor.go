// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celledit

import (
	"slices"

	"github.com/bureau-foundation/planboard/lib/choice"
)

// ChoiceEditor edits an enumerated or assignee cell through an
// enhanced choice control.
type ChoiceEditor struct {
	control  *choice.Control
	enhanced *choice.Enhanced
}

// Value returns the control's selected value.
func (editor *ChoiceEditor) Value() string {
	return editor.control.Value()
}

// Control returns the underlying control.
func (editor *ChoiceEditor) Control() *choice.Control {
	return editor.control
}

// Enhanced returns the control's enhanced view.
func (editor *ChoiceEditor) Enhanced() *choice.Enhanced {
	return editor.enhanced
}

// ValueOptionsWith builds options from values, adding current at the
// front when it is non-empty and not already offered, so opening an
// editor never silently changes a value the domain no longer lists.
func ValueOptionsWith(values []string, current string) []choice.Option {
	if current != "" && !slices.Contains(values, current) {
		values = append([]string{current}, values...)
	}
	return choice.ValueOptions(values)
}
