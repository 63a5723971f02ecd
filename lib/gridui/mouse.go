// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/planboard/lib/celledit"
	"github.com/bureau-foundation/planboard/lib/choice"
)

// wheelStep is how many rows one wheel notch moves the cursor.
const wheelStep = 3

func (model Model) handleMouse(message tea.MouseMsg) (Model, tea.Cmd) {
	modal := model.formOpen || model.confirm != nil
	switch message.Button {
	case tea.MouseButtonWheelUp:
		if !modal && model.activeSession() == nil {
			model.moveCursor(-wheelStep)
		}
		return model, nil
	case tea.MouseButtonWheelDown:
		if !modal && model.activeSession() == nil {
			model.moveCursor(wheelStep)
		}
		return model, nil
	}
	if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
		return model, nil
	}

	if model.confirm != nil {
		lines, anchorX, anchorY := model.confirm.modal(model.theme).Render(model.theme, model.width, model.height)
		if !insideBox(lines, anchorX, anchorY, message.X, message.Y) {
			model.confirm = nil
		}
		return model, nil
	}
	if model.formOpen {
		layout := model.form.layout(model.theme, model.width, model.height)
		action, command := model.form.handleClick(layout, message.X, message.Y)
		return model.applyFormAction(action, command)
	}

	// An open popup takes the click before the cells beneath it.
	if open := model.page.OpenPopup(); open != nil {
		if popupX, popupY, ok := model.popupOrigin(open); ok &&
			message.X >= popupX && message.X < popupX+open.PopupWidth() {
			if option := open.OptionAtRow(message.Y - popupY); option >= 0 {
				open.SelectAt(option)
				return model, nil
			}
		}
	}

	cell, onCell := model.cellAt(message.X, message.Y)
	var target *choice.Control
	if onCell {
		if session, ok := model.controller.Session(cell); ok && session.Choice() != nil {
			target = session.Choice().Control()
		}
	}
	model.page.PointerDown(target)

	if !onCell {
		var commands []tea.Cmd
		for _, session := range model.controller.Sessions() {
			commands = append(commands, model.commit(session.Cell))
		}
		return model, tea.Batch(commands...)
	}

	model.moveCursorTo(cell)
	if session, ok := model.controller.Session(cell); ok {
		if editor := session.Choice(); editor != nil {
			editor.Enhanced().Toggle()
		}
		return model, nil
	}
	return model, model.activate(cell)
}

// cellAt maps a screen position to the grid cell drawn there.
func (model Model) cellAt(x, y int) (celledit.Cell, bool) {
	screenRow := y - gridTop
	if screenRow < 0 || screenRow >= model.visibleHeight() {
		return celledit.Cell{}, false
	}
	position := model.scrollOffset + screenRow
	if position >= len(model.visible) {
		return celledit.Cell{}, false
	}
	column := columnAtX(x)
	if column < 0 {
		return celledit.Cell{}, false
	}
	return celledit.Cell{Row: model.visible[position], Field: columns[column].field}, true
}

// cellOrigin returns the screen position of cell, or false when it is
// filtered out or scrolled off screen.
func (model Model) cellOrigin(cell celledit.Cell) (int, int, bool) {
	position := slices.Index(model.visible, cell.Row)
	column := columnIndex(cell.Field)
	if position < 0 || column < 0 {
		return 0, 0, false
	}
	screenRow := position - model.scrollOffset
	if screenRow < 0 || screenRow >= model.visibleHeight() {
		return 0, 0, false
	}
	return columnX(column), gridTop + screenRow, true
}

// popupOrigin returns where the open popup of a grid editor is drawn:
// below its cell, or above when the grid has no room below.
func (model Model) popupOrigin(open *choice.Enhanced) (int, int, bool) {
	for _, session := range model.controller.Sessions() {
		if editor := session.Choice(); editor == nil || editor.Enhanced() != open {
			continue
		}
		x, y, ok := model.cellOrigin(session.Cell)
		if !ok {
			return 0, 0, false
		}
		height := len(open.Items())
		gridEnd := gridTop + model.visibleHeight()
		if y+1+height > gridEnd && y-height >= 0 {
			return x, y - height, true
		}
		return x, y + 1, true
	}
	return 0, 0, false
}

func (model *Model) moveCursorTo(cell celledit.Cell) {
	if position := slices.Index(model.visible, cell.Row); position >= 0 {
		model.cursorRow = position
	}
	if column := columnIndex(cell.Field); column >= 0 {
		model.cursorColumn = column
	}
}

// insideBox reports whether (x, y) falls within rendered overlay lines
// anchored at (anchorX, anchorY).
func insideBox(lines []string, anchorX, anchorY, x, y int) bool {
	if len(lines) == 0 {
		return false
	}
	width := ansi.StringWidth(lines[0])
	return x >= anchorX && x < anchorX+width && y >= anchorY && y < anchorY+len(lines)
}
