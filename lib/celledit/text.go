// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package celledit

// TextEditor is a single-line rune buffer with a cursor. A fresh
// editor has its whole text selected, so the first typed character
// replaces the text while cursor keys keep it.
type TextEditor struct {
	buffer      []rune
	cursor      int
	allSelected bool
}

// NewTextEditor creates an editor pre-filled with value, cursor at the
// end, everything selected.
func NewTextEditor(value string) *TextEditor {
	buffer := []rune(value)
	return &TextEditor{buffer: buffer, cursor: len(buffer), allSelected: len(buffer) > 0}
}

// Value returns the current text.
func (editor *TextEditor) Value() string {
	return string(editor.buffer)
}

// Cursor returns the cursor position in runes.
func (editor *TextEditor) Cursor() int {
	return editor.cursor
}

// AllSelected reports whether the whole text is selected.
func (editor *TextEditor) AllSelected() bool {
	return editor.allSelected
}

// Runes returns a copy of the buffer for rendering.
func (editor *TextEditor) Runes() []rune {
	return append([]rune(nil), editor.buffer...)
}

// replaceSelection drops the selected text. Returns true when there
// was a selection.
func (editor *TextEditor) replaceSelection() bool {
	if !editor.allSelected {
		return false
	}
	editor.buffer = editor.buffer[:0]
	editor.cursor = 0
	editor.allSelected = false
	return true
}

// Insert types text at the cursor, replacing a selection.
func (editor *TextEditor) Insert(text string) {
	editor.replaceSelection()
	for _, character := range text {
		editor.buffer = append(editor.buffer, 0)
		copy(editor.buffer[editor.cursor+1:], editor.buffer[editor.cursor:])
		editor.buffer[editor.cursor] = character
		editor.cursor++
	}
}

// Backspace deletes the rune before the cursor, or the selection.
func (editor *TextEditor) Backspace() {
	if editor.replaceSelection() || editor.cursor == 0 {
		return
	}
	editor.buffer = append(editor.buffer[:editor.cursor-1], editor.buffer[editor.cursor:]...)
	editor.cursor--
}

// Delete deletes the rune under the cursor, or the selection.
func (editor *TextEditor) Delete() {
	if editor.replaceSelection() || editor.cursor >= len(editor.buffer) {
		return
	}
	editor.buffer = append(editor.buffer[:editor.cursor], editor.buffer[editor.cursor+1:]...)
}

// Left moves the cursor back one rune. With a selection it collapses
// the selection to its start.
func (editor *TextEditor) Left() {
	if editor.allSelected {
		editor.allSelected = false
		editor.cursor = 0
		return
	}
	if editor.cursor > 0 {
		editor.cursor--
	}
}

// Right moves the cursor forward one rune. With a selection it
// collapses the selection to its end.
func (editor *TextEditor) Right() {
	if editor.allSelected {
		editor.allSelected = false
		editor.cursor = len(editor.buffer)
		return
	}
	if editor.cursor < len(editor.buffer) {
		editor.cursor++
	}
}

// Home moves the cursor to the start.
func (editor *TextEditor) Home() {
	editor.allSelected = false
	editor.cursor = 0
}

// End moves the cursor to the end.
func (editor *TextEditor) End() {
	editor.allSelected = false
	editor.cursor = len(editor.buffer)
}

// SelectAll selects the whole text.
func (editor *TextEditor) SelectAll() {
	editor.allSelected = len(editor.buffer) > 0
	editor.cursor = len(editor.buffer)
}
