// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/planboard/lib/celledit"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// View implements tea.Model.
func (model Model) View() string {
	if model.width == 0 {
		return "Loading..."
	}

	sections := make([]string, 0, model.visibleHeight()+gridTop+gridBottom)

	// The filter bar replaces the header so the grid does not shift.
	if filterView := model.filter.View(model.theme, model.width); filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}
	sections = append(sections, renderTitles(model.theme))

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)
	sections = append(sections, model.renderBody()...)
	sections = append(sections, separator, model.renderStatus())

	output := strings.Join(sections, "\n")

	if open := model.page.OpenPopup(); open != nil {
		if popupX, popupY, ok := model.popupOrigin(open); ok {
			output = tui.SpliceOverlay(output, open.RenderPopup(), popupX, popupY)
		}
	}
	if model.formOpen {
		output = model.form.view(output, model.theme, model.width, model.height)
	}
	if model.confirm != nil {
		lines, anchorX, anchorY := model.confirm.modal(model.theme).Render(model.theme, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderHeader shows the board name and record count on the left and
// the signed-in actor on the right: initial, username, role label.
func (model Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	left := titleStyle.Render(" planboard") + faint.Render(fmt.Sprintf("  %d/%d", len(model.visible), model.store.Len()))

	right := faint.Render("לא מחובר ")
	if current, ok := model.currentActor(); ok {
		initial, _ := utf8.DecodeRuneInString(current.Username)
		if initial == utf8.RuneError {
			initial = '?'
		}
		avatar := lipgloss.NewStyle().Bold(true).
			Foreground(model.theme.SelectedForeground).
			Background(model.theme.AccentColor).
			Render(" " + string(unicode.ToUpper(initial)) + " ")
		right = avatar + " " +
			lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(tui.Excerpt(current.Username, 24)) +
			faint.Render(" · "+current.Role.Label()+" ")
	}

	gap := model.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return ansi.Truncate(left+" "+right, model.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderBody renders the visible page of rows, each followed by its
// scrollbar column.
func (model Model) renderBody() []string {
	height := model.visibleHeight()
	scrollbar := tui.ScrollbarColumn(model.theme, height, len(model.visible), model.scrollOffset)
	blank := strings.Repeat(" ", rowWidth())

	lines := make([]string, height)
	for screenRow := range lines {
		position := model.scrollOffset + screenRow
		line := blank
		switch {
		case position < len(model.visible):
			line = model.renderRow(position)
		case screenRow == 0 && len(model.visible) == 0:
			line = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(fitWidth(" אין פרויקטים להצגה", rowWidth()))
		}
		if screenRow < len(scrollbar) {
			line += " " + scrollbar[screenRow]
		}
		lines[screenRow] = line
	}
	return lines
}

// renderRow assembles one row from cached display cells, rendering
// fresh only the cells that are being edited, flashing, or under the
// cursor.
func (model Model) renderRow(position int) string {
	index := model.visible[position]
	record, err := model.store.At(index)
	if err != nil {
		return strings.Repeat(" ", rowWidth())
	}
	cached := model.cache.row(model.theme, index, record)
	now := model.clock()
	cursorVisible := !model.formOpen && model.confirm == nil

	parts := make([]string, len(columns))
	for slot, column := range columns {
		cell := celledit.Cell{Row: index, Field: column.field}
		value := record.Value(column.field)
		switch session, editing := model.controller.Session(cell); {
		case editing:
			parts[slot] = model.renderEditor(session, column.width)
		case model.flash.Flashing(cell.Key(), now):
			parts[slot] = highlightCell(model.theme.FlashBackground, model.theme.NormalText, column.field, value, column.width)
		case cursorVisible && position == model.cursorRow && slot == model.cursorColumn:
			parts[slot] = highlightCell(model.theme.SelectedBackground, model.theme.SelectedForeground, column.field, value, column.width)
		default:
			parts[slot] = cached[slot]
		}
	}
	return strings.Join(parts, strings.Repeat(" ", columnGap))
}

// highlightCell renders a cell's text on a solid background, used for
// the cursor and the commit flash.
func highlightCell(background, foreground lipgloss.TerminalColor, field project.Field, value string, width int) string {
	text := tui.Excerpt(value, width)
	if text == "" && field.Kind() == project.KindEnum {
		text = emptyBadge
	}
	return lipgloss.NewStyle().Background(background).Foreground(foreground).Render(fitWidth(text, width))
}

func (model Model) renderEditor(session *celledit.Session, width int) string {
	if editor := session.Choice(); editor != nil {
		return editor.Enhanced().RenderTrigger(width)
	}
	return renderTextEditor(model.theme, session.Text(), width)
}

// renderTextEditor draws the edit buffer with a block cursor, scrolled
// so the cursor stays inside width. A fully selected buffer renders in
// the selection colours without a cursor.
func renderTextEditor(theme tui.Theme, editor *celledit.TextEditor, width int) string {
	base := lipgloss.NewStyle().Foreground(theme.NormalText).Background(theme.EditingBackground)
	if editor.AllSelected() {
		selected := lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
		text := tui.Excerpt(editor.Value(), width)
		return selected.Render(text) + base.Render(strings.Repeat(" ", max(width-ansi.StringWidth(text), 0)))
	}

	runes := editor.Runes()
	cursor := editor.Cursor()
	start := max(cursor-width+1, 0)
	before := tui.Sanitize(string(runes[start:cursor]))
	under := " "
	after := ""
	if cursor < len(runes) {
		under = tui.Sanitize(string(runes[cursor]))
		if under == "" {
			under = " "
		}
		after = tui.Sanitize(string(runes[cursor+1:]))
	}
	cursorStyle := base.Reverse(true)

	used := ansi.StringWidth(before) + ansi.StringWidth(under)
	afterWidth := max(width-used, 0)
	if ansi.StringWidth(after) > afterWidth {
		after = ansi.Truncate(after, afterWidth, "")
	}
	padding := max(afterWidth-ansi.StringWidth(after), 0)
	return base.Render(before) + cursorStyle.Render(under) + base.Render(after+strings.Repeat(" ", padding))
}

// renderStatus shows, in order of precedence: the current notice, the
// latest log record, or key help.
func (model Model) renderStatus() string {
	if notice, ok := model.board.Current(); ok {
		color := model.theme.NoticeError.Foreground
		if notice.Kind == celledit.NoticeSuccess {
			color = model.theme.NoticeSuccess.Foreground
		}
		return lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(" " + tui.Excerpt(notice.Message, max(model.width-1, 1)))
	}
	if model.logSummary != "" {
		color := model.theme.NoticeError.Foreground
		if model.logLevel < slog.LevelError {
			color = model.theme.AccentColor
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(" " + tui.Excerpt(model.logSummary, max(model.width-1, 1)))
	}
	return model.renderHelp()
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var help string
	switch session := model.activeSession(); {
	case model.confirm != nil:
		help = " [DELETE] y confirm  n/Esc cancel"
	case model.formOpen:
		help = " [NEW] Tab next field  C-s save  Esc cancel"
	case model.filter.Active:
		help = " [FILTER] type to filter  Enter keep  Esc clear"
	case session != nil && session.Choice() != nil:
		help = " [EDIT] Tab/click away commit  ↑↓ choose  Enter/Space list  Esc cancel"
	case session != nil:
		help = " [EDIT] Enter/Tab commit  Esc cancel"
	default:
		admin := false
		if current, ok := model.currentActor(); ok {
			admin = model.policy.CanCreate(current)
		}
		parts := []string{" [GRID]"}
		for _, binding := range model.keys.helpBindings(admin) {
			parts = append(parts, binding.Help().Key+" "+binding.Help().Desc)
		}
		help = strings.Join(parts, "  ")
		if len(model.visible) > 0 {
			help += fmt.Sprintf("  %d/%d", model.cursorRow+1, len(model.visible))
		}
	}
	return style.Render(tui.Excerpt(help, max(model.width, 1)))
}
