// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// searchableFields are matched by the row filter.
var searchableFields = []project.Field{
	project.FieldNumber,
	project.FieldName,
	project.FieldAssignedTo,
	project.FieldStatus,
	project.FieldPriority,
	project.FieldNotes,
}

// FilterModel narrows the grid to rows fuzzy-matching a query. Rows
// keep their store order; the filter only hides rows.
type FilterModel struct {
	// Input is the query text.
	Input string

	// Active is true while the query has keyboard focus.
	Active bool

	slab *util.Slab
}

// Matches reports whether any searchable field of record fuzzy-matches
// the query. An empty query matches everything.
func (filter *FilterModel) Matches(record project.Record) bool {
	if filter.Input == "" {
		return true
	}
	if filter.slab == nil {
		filter.slab = util.MakeSlab(100*1024, 2048)
	}
	pattern := []rune(filter.Input)
	for _, field := range searchableFields {
		if tui.FuzzyMatch(record.Value(field), pattern, filter.slab).Score > 0 {
			return true
		}
	}
	return false
}

// Apply returns the store indices of the records that match.
func (filter *FilterModel) Apply(records []project.Record) []int {
	indices := make([]int, 0, len(records))
	for index, record := range records {
		if filter.Matches(record) {
			indices = append(indices, index)
		}
	}
	return indices
}

// HandleRune appends a typed character to the query.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character. Returns false when the
// query was already empty.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear empties the query and drops focus.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar, or "" when there is no query and the
// filter is not focused.
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}
	query := tui.Sanitize(filter.Input)
	if filter.Active {
		cursor := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render("▎")
		return lipgloss.NewStyle().Foreground(theme.NormalText).Width(width).Render(" / " + query + cursor)
	}
	return lipgloss.NewStyle().Foreground(theme.FaintText).Width(width).Render(" filter: " + query)
}
