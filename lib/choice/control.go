// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package choice

import "slices"

// Option is one entry of a control. Label is what the user sees;
// Value is what the control reports. The empty Value means "unset".
type Option struct {
	Value string
	Label string
}

// ValueOptions builds options whose labels equal their values, which
// is how every enumerated field is displayed.
func ValueOptions(values []string) []Option {
	options := make([]Option, len(values))
	for index, value := range values {
		options[index] = Option{Value: value, Label: value}
	}
	return options
}

// Control is a native-like single-choice control. The zero value is
// not usable; call NewControl.
type Control struct {
	name     string
	options  []Option
	selected int

	changeListeners    []func(Option)
	cancelListeners    []func()
	structureListeners []func()
}

// NewControl creates a control with the first option selected (or
// nothing selected when options is empty).
func NewControl(name string, options []Option) *Control {
	control := &Control{name: name, options: slices.Clone(options), selected: -1}
	if len(options) > 0 {
		control.selected = 0
	}
	return control
}

// Name identifies the control, typically the field it edits.
func (control *Control) Name() string {
	return control.name
}

// Options returns a copy of the options.
func (control *Control) Options() []Option {
	return slices.Clone(control.options)
}

// Len returns the number of options.
func (control *Control) Len() int {
	return len(control.options)
}

// Selected returns the selected index, or -1.
func (control *Control) Selected() int {
	return control.selected
}

// SelectedOption returns the selected option.
func (control *Control) SelectedOption() (Option, bool) {
	if control.selected < 0 || control.selected >= len(control.options) {
		return Option{}, false
	}
	return control.options[control.selected], true
}

// Value returns the selected option's value, or "" when nothing is
// selected.
func (control *Control) Value() string {
	option, _ := control.SelectedOption()
	return option.Value
}

// SetSelected moves the selection without notifying anyone. Returns
// false when index is out of range.
func (control *Control) SetSelected(index int) bool {
	if index < 0 || index >= len(control.options) {
		return false
	}
	control.selected = index
	return true
}

// SetValue selects the first option with the given value. Returns
// false (selection unchanged) when no option has it.
func (control *Control) SetValue(value string) bool {
	index := slices.IndexFunc(control.options, func(option Option) bool {
		return option.Value == value
	})
	return control.SetSelected(index)
}

// SetOptions replaces the options. The previously selected value stays
// selected when it is still offered; otherwise the first option is.
// Structure listeners run afterwards.
func (control *Control) SetOptions(options []Option) {
	previous := control.Value()
	control.options = slices.Clone(options)
	control.selected = -1
	if !control.SetValue(previous) && len(control.options) > 0 {
		control.selected = 0
	}
	for _, listener := range slices.Clone(control.structureListeners) {
		listener()
	}
}

// OnChange registers a listener for committed selections.
func (control *Control) OnChange(listener func(Option)) {
	control.changeListeners = append(control.changeListeners, listener)
}

// OnCancel registers a listener for Escape on the enhanced view.
func (control *Control) OnCancel(listener func()) {
	control.cancelListeners = append(control.cancelListeners, listener)
}

// OnStructureChange registers a listener for SetOptions.
func (control *Control) OnStructureChange(listener func()) {
	control.structureListeners = append(control.structureListeners, listener)
}

// NotifyChange fires the change listeners with the current selection.
func (control *Control) NotifyChange() {
	option, _ := control.SelectedOption()
	for _, listener := range slices.Clone(control.changeListeners) {
		listener(option)
	}
}

// NotifyCancel fires the cancel listeners.
func (control *Control) NotifyCancel() {
	for _, listener := range slices.Clone(control.cancelListeners) {
		listener()
	}
}
