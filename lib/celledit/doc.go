// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package celledit turns a click on a grid cell into an in-place edit
// and back.
//
// The [Controller] owns an explicit per-cell state map keyed by
// [Cell] (row index, field). A cell is in display state unless the
// map holds a [Session] for it. [Controller.Activate] asks the
// permission policy (re-querying the actor provider every time) and
// either opens a session with a pre-filled editor or reports the
// denial through the injected [Notifier]. Activating a cell that is
// already editing does nothing.
//
// A session ends one of two ways:
//
//   - Commit ([Controller.Blur], or [Controller.Confirm] for Enter,
//     which is a forced blur): the editor's value is written through
//     the record store and a [Commit] is returned so the caller can
//     flash the cell.
//   - Cancel ([Controller.Cancel], Escape): the session is dropped
//     and nothing is written. Escape inside an enhanced choice popup
//     reaches Cancel through the control's cancel listeners.
//
// Text fields edit in a [TextEditor]. Enumerated fields and the
// assignee field edit in a [ChoiceEditor], a choice control enhanced
// on the controller's page, so opening one popup closes any other.
//
// The controller follows store events: removing a row drops sessions
// on it and shifts sessions on later rows, and a reload drops every
// session.
//
// Controller is not safe for concurrent use.
package celledit
