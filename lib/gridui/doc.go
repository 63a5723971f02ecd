// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gridui is the board's terminal grid: a bubbletea model that
// projects the record store onto rows and columns and routes clicks
// and keys to the cell edit controller.
//
// Layout, top to bottom: a header line (board name and the signed-in
// actor, or the filter bar while filtering), the column titles, the
// visible page of rows with a scrollbar, a separator, and a status
// line that shows notices, log records, or key help.
//
// Interaction:
//
//   - Click a cell, or press Enter on the cursor cell, to edit it.
//     Text cells take keystrokes directly; Enter commits, Tab commits,
//     Escape cancels. Choice cells show an enhanced trigger: Enter or
//     Space opens the popup, the arrows move the selection, a click on
//     an entry selects it, Escape cancels, and Tab or a click anywhere
//     else commits.
//   - "/" filters rows with fuzzy matching.
//   - Admins press "n" to add a record and "d" to delete the cursor
//     row after confirmation.
//
// Every value is sanitized before it is styled, so record text cannot
// inject terminal escape sequences. Rendered cells are cached per row
// and invalidated from store events, so a commit re-renders exactly
// the affected row.
package gridui
