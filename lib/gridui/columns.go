// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// emptyBadge is shown for an enumerated field with no value.
const emptyBadge = "--"

// column is one grid column: the field it shows and its width.
type column struct {
	field project.Field
	width int
}

// columns in display order.
var columns = []column{
	{project.FieldNumber, 12},
	{project.FieldName, 28},
	{project.FieldPriority, 10},
	{project.FieldAssignedTo, 12},
	{project.FieldStatus, 24},
	{project.FieldNotes, 24},
	{project.FieldIDF, 6},
	{project.FieldBezeq, 6},
	{project.FieldHot, 6},
}

// columnGap separates adjacent columns.
const columnGap = 1

// rowWidth is the width of a rendered row, excluding the scrollbar.
func rowWidth() int {
	width := 0
	for index, column := range columns {
		if index > 0 {
			width += columnGap
		}
		width += column.width
	}
	return width
}

// columnX returns the starting X of column index.
func columnX(index int) int {
	x := 0
	for position := 0; position < index; position++ {
		x += columns[position].width + columnGap
	}
	return x
}

// columnAtX returns the column under screen X, or -1 for gaps and the
// area past the last column.
func columnAtX(x int) int {
	start := 0
	for index, column := range columns {
		if x >= start && x < start+column.width {
			return index
		}
		start += column.width + columnGap
	}
	return -1
}

// columnIndex returns the position of field in columns.
func columnIndex(field project.Field) int {
	for index, column := range columns {
		if column.field == field {
			return index
		}
	}
	return -1
}

// fitWidth truncates or pads already-sanitized text to width.
func fitWidth(text string, width int) string {
	if ansi.StringWidth(text) > width {
		return ansi.Truncate(text, width, "")
	}
	return text + strings.Repeat(" ", width-ansi.StringWidth(text))
}

// renderDisplayCell renders a cell in display state: a badge for
// enumerated fields, plain sanitized text otherwise. The result is
// exactly width columns wide.
func renderDisplayCell(theme tui.Theme, field project.Field, value string, width int) string {
	if field.Kind() != project.KindEnum {
		return lipgloss.NewStyle().Foreground(theme.NormalText).Render(fitWidth(tui.Excerpt(value, width), width))
	}
	return renderBadge(theme, value, width)
}

// renderBadge renders value as a coloured pill left-aligned in width
// columns. Empty values use the neutral "--" badge; values without a
// palette entry render in the neutral colours too.
func renderBadge(theme tui.Theme, value string, width int) string {
	pair := theme.NeutralBadge
	label := emptyBadge
	if value != "" {
		label = value
		if colors, ok := theme.ValueColor(value); ok {
			pair = colors
		}
	}
	badge := " " + tui.Excerpt(label, max(width-2, 1)) + " "
	if ansi.StringWidth(badge) > width {
		badge = ansi.Truncate(badge, width, "")
	}
	rendered := pair.Style().Render(badge)
	return rendered + strings.Repeat(" ", max(width-ansi.StringWidth(badge), 0))
}

// renderTitles renders the column title row.
func renderTitles(theme tui.Theme) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	parts := make([]string, len(columns))
	for index, column := range columns {
		parts[index] = style.Render(fitWidth(tui.Excerpt(column.field.Title(), column.width), column.width))
	}
	return strings.Join(parts, strings.Repeat(" ", columnGap))
}
