// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/planboard/lib/choice"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// Add-form geometry.
const (
	formTitle      = "פרויקט חדש"
	formLabelWidth = 14
	formInputWidth = 32
)

// formField is one row of the add form: a text input, or an enhanced
// choice control.
type formField struct {
	field    project.Field
	input    textinput.Model
	enhanced *choice.Enhanced
}

func (field *formField) isChoice() bool {
	return field.enhanced != nil
}

// value returns the submitted value: trimmed text, or the selection.
func (field *formField) value() string {
	if field.isChoice() {
		return field.enhanced.Control().Value()
	}
	return strings.TrimSpace(field.input.Value())
}

// addForm collects a new record. Its choice fields are enhanced on a
// page of their own, so opening one popup closes any other. The form
// is built once per model and reset on every open.
type addForm struct {
	page   *choice.Page
	fields []formField
	focus  int
}

func newAddForm(theme tui.Theme) *addForm {
	form := &addForm{page: choice.NewPage(theme)}
	for _, field := range project.Fields {
		entry := formField{field: field}
		switch field.Kind() {
		case project.KindText:
			entry.input = textinput.New()
			entry.input.Prompt = ""
			entry.input.CharLimit = 200
			entry.input.Width = formInputWidth - 1
		case project.KindEnum:
			entry.enhanced = form.page.Enhance(choice.NewControl(string(field), formEnumOptions(field)))
		case project.KindIdentity:
			// Populated with the assignable usernames on open.
			entry.enhanced = form.page.Enhance(choice.NewControl(string(field), []choice.Option{{}}))
		}
		form.fields = append(form.fields, entry)
	}
	return form
}

// formEnumOptions lists the choices for an enumerated field. Priority
// always has a value; the other domains start on the empty
// placeholder.
func formEnumOptions(field project.Field) []choice.Option {
	domain := field.Domain()
	if field == project.FieldPriority {
		return choice.ValueOptions(domain.Values)
	}
	return choice.ValueOptions(domain.EditChoices())
}

// reset clears every input, selects each control's first option, and
// reloads the assignee options. The assignee starts on the placeholder
// so it must be picked explicitly.
func (form *addForm) reset(assignable []string) tea.Cmd {
	form.page.PointerDown(nil)
	for index := range form.fields {
		entry := &form.fields[index]
		switch {
		case entry.field.Kind() == project.KindIdentity:
			options := append([]choice.Option{{}}, choice.ValueOptions(assignable)...)
			entry.enhanced.Control().SetOptions(options)
			entry.enhanced.Control().SetSelected(0)
			entry.enhanced.Refresh()
		case entry.isChoice():
			entry.enhanced.Control().SetSelected(0)
			entry.enhanced.Refresh()
		default:
			entry.input.Reset()
		}
	}
	return form.focusField(0)
}

// record assembles the record the form describes.
func (form *addForm) record() project.Record {
	var record project.Record
	for index := range form.fields {
		entry := &form.fields[index]
		// Every field in project.Fields is settable.
		_ = record.Set(entry.field, entry.value())
	}
	return record
}

func (form *addForm) focused() *formField {
	return &form.fields[form.focus]
}

// focusField moves keyboard focus to index, closing any open popup.
func (form *addForm) focusField(index int) tea.Cmd {
	form.page.PointerDown(nil)
	form.focus = (index + len(form.fields)) % len(form.fields)
	var command tea.Cmd
	for position := range form.fields {
		entry := &form.fields[position]
		if entry.isChoice() {
			continue
		}
		if position == form.focus {
			command = entry.input.Focus()
		} else {
			entry.input.Blur()
		}
	}
	return command
}

// formAction is what a key or click asks of the model.
type formAction int

const (
	formContinue formAction = iota
	formSubmit
	formDismiss
)

// handleKey applies a key press to the focused field.
func (form *addForm) handleKey(message tea.KeyMsg) (formAction, tea.Cmd) {
	entry := form.focused()
	switch message.Type {
	case tea.KeyTab:
		return formContinue, form.focusField(form.focus + 1)
	case tea.KeyShiftTab:
		return formContinue, form.focusField(form.focus - 1)
	case tea.KeyCtrlS:
		return formSubmit, nil
	case tea.KeyEsc:
		if entry.isChoice() && entry.enhanced.IsOpen() {
			entry.enhanced.Close()
			return formContinue, nil
		}
		return formDismiss, nil
	}

	if entry.isChoice() {
		switch message.Type {
		case tea.KeyEnter:
			entry.enhanced.HandleKey(choice.KeyEnter)
		case tea.KeySpace:
			entry.enhanced.HandleKey(choice.KeySpace)
		case tea.KeyUp:
			entry.enhanced.HandleKey(choice.KeyUp)
		case tea.KeyDown:
			entry.enhanced.HandleKey(choice.KeyDown)
		}
		return formContinue, nil
	}

	if message.Type == tea.KeyEnter {
		return formSubmit, nil
	}
	var command tea.Cmd
	entry.input, command = entry.input.Update(message)
	return formContinue, command
}

// modal returns the form's dialog chrome.
func (form *addForm) modal(theme tui.Theme) tui.Modal {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.PopupBackground)
	focusStyle := labelStyle.Foreground(theme.AccentColor).Bold(true)
	body := make([]string, len(form.fields))
	for index := range form.fields {
		entry := &form.fields[index]
		style := labelStyle
		if index == form.focus {
			style = focusStyle
		}
		label := style.Render(fitWidth(tui.Excerpt(entry.field.Title(), formLabelWidth), formLabelWidth))
		body[index] = label + " " + form.renderInput(theme, entry, index == form.focus)
	}
	return tui.Modal{
		Title:      formTitle,
		Body:       body,
		Footer:     "Tab next  Enter/Space open  C-s save  Esc cancel",
		InnerWidth: formLabelWidth + 1 + formInputWidth,
	}
}

func (form *addForm) renderInput(theme tui.Theme, entry *formField, focused bool) string {
	if entry.isChoice() {
		return entry.enhanced.RenderTrigger(formInputWidth)
	}
	if focused {
		return entry.input.View()
	}
	text := tui.Excerpt(entry.input.Value(), formInputWidth)
	return lipgloss.NewStyle().Foreground(theme.NormalText).Background(theme.EditingBackground).
		Render(text + strings.Repeat(" ", max(formInputWidth-ansi.StringWidth(text), 0)))
}

// formLayout locates the form on screen.
type formLayout struct {
	lines            []string
	anchorX, anchorY int
}

func (form *addForm) layout(theme tui.Theme, width, height int) formLayout {
	lines, anchorX, anchorY := form.modal(theme).Render(theme, width, height)
	return formLayout{lines: lines, anchorX: anchorX, anchorY: anchorY}
}

// fieldOrigin returns the screen position of field index's input.
func (layout formLayout) fieldOrigin(index int) (int, int) {
	return layout.anchorX + tui.ModalContentOffsetX + formLabelWidth + 1,
		layout.anchorY + tui.ModalBodyOffsetY + index
}

// contains reports whether (x, y) falls inside the dialog box.
func (layout formLayout) contains(x, y int) bool {
	return insideBox(layout.lines, layout.anchorX, layout.anchorY, x, y)
}

// popupOrigin returns where the open popup of field index is drawn:
// just below its trigger.
func (layout formLayout) popupOrigin(index int) (int, int) {
	x, y := layout.fieldOrigin(index)
	return x, y + 1
}

// openField returns the index of the field whose popup is open.
func (form *addForm) openField() int {
	for index := range form.fields {
		if form.fields[index].isChoice() && form.fields[index].enhanced.IsOpen() {
			return index
		}
	}
	return -1
}

// handleClick applies a left click at (x, y).
func (form *addForm) handleClick(layout formLayout, x, y int) (formAction, tea.Cmd) {
	if open := form.openField(); open >= 0 {
		enhanced := form.fields[open].enhanced
		popupX, popupY := layout.popupOrigin(open)
		if x >= popupX && x < popupX+enhanced.PopupWidth() {
			if option := enhanced.OptionAtRow(y - popupY); option >= 0 {
				enhanced.SelectAt(option)
				return formContinue, nil
			}
		}
	}

	if !layout.contains(x, y) {
		form.page.PointerDown(nil)
		return formDismiss, nil
	}

	for index := range form.fields {
		fieldX, fieldY := layout.fieldOrigin(index)
		if y != fieldY || x < fieldX-formLabelWidth-1 || x >= fieldX+formInputWidth {
			continue
		}
		entry := &form.fields[index]
		if !entry.isChoice() {
			return formContinue, form.focusField(index)
		}
		wasOpen := entry.enhanced.IsOpen()
		command := form.focusField(index)
		if !wasOpen {
			entry.enhanced.Open()
		}
		return formContinue, command
	}

	form.page.PointerDown(nil)
	return formContinue, nil
}

// view splices the form and its open popup over the screen.
func (form *addForm) view(output string, theme tui.Theme, width, height int) string {
	layout := form.layout(theme, width, height)
	output = tui.SpliceOverlay(output, layout.lines, layout.anchorX, layout.anchorY)
	if open := form.openField(); open >= 0 {
		popupX, popupY := layout.popupOrigin(open)
		output = tui.SpliceOverlay(output, form.fields[open].enhanced.RenderPopup(), popupX, popupY)
	}
	return output
}
