// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package choice implements the board's single-choice controls and
// the enhancer that gives them a coloured trigger and popup list.
//
// A [Control] is the state holder: ordered options, the selected
// index, and three listener lists (change, cancel, structure). It
// renders nothing. A [Page] is the registry of enhanced controls on
// one screen; [Page.Enhance] wraps a control in an [Enhanced] view
// (trigger label, popup items) exactly once, however many times it
// is called. The page guarantees at most one open popup and routes
// pointer presses so that pressing anywhere outside a control closes
// its popup.
//
// Selection by pointer ([Enhanced.SelectAt]) fires the control's
// change listeners. Moving the selection with the arrow keys does
// not: it only updates the control, the trigger, and the list.
// Escape closes the popup and fires the cancel listeners, which is
// how an inline editor learns that the user backed out.
//
// Rebuilding a control's options with [Control.SetOptions] notifies
// structure listeners; every enhanced view listens and refreshes its
// trigger.
package choice
