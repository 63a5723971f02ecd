// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package choice

import (
	"slices"

	"github.com/bureau-foundation/planboard/lib/tui"
)

// Placeholder is shown for an option with an empty label.
const Placeholder = "-- בחר --"

// Key is a keyboard input an enhanced control reacts to.
type Key int

const (
	KeyEnter Key = iota
	KeySpace
	KeyEscape
	KeyUp
	KeyDown
)

// Page is the set of enhanced controls on one screen.
type Page struct {
	theme    tui.Theme
	enhanced []*Enhanced
}

// NewPage creates an empty page whose views take colours from theme.
func NewPage(theme tui.Theme) *Page {
	return &Page{theme: theme}
}

// Theme returns the page's theme.
func (page *Page) Theme() tui.Theme {
	return page.theme
}

// Enhance returns the enhanced view of control, creating it on first
// call. Repeated calls return the same view and register nothing new.
func (page *Page) Enhance(control *Control) *Enhanced {
	if existing, ok := page.Lookup(control); ok {
		return existing
	}
	enhanced := &Enhanced{page: page, control: control}
	control.OnStructureChange(func() {
		if !page.registered(enhanced) {
			return
		}
		enhanced.Refresh()
		if enhanced.open {
			enhanced.Rebuild()
		}
	})
	enhanced.Refresh()
	page.enhanced = append(page.enhanced, enhanced)
	return enhanced
}

// EnhanceAll enhances every control; already-enhanced controls are
// skipped.
func (page *Page) EnhanceAll(controls ...*Control) {
	for _, control := range controls {
		page.Enhance(control)
	}
}

// Lookup returns the enhanced view of control, if any.
func (page *Page) Lookup(control *Control) (*Enhanced, bool) {
	for _, enhanced := range page.enhanced {
		if enhanced.control == control {
			return enhanced, true
		}
	}
	return nil, false
}

// Len returns the number of enhanced controls.
func (page *Page) Len() int {
	return len(page.enhanced)
}

// Release removes control from the page, closing its popup. Used when
// the control's screen element goes away.
func (page *Page) Release(control *Control) {
	page.enhanced = slices.DeleteFunc(page.enhanced, func(enhanced *Enhanced) bool {
		if enhanced.control == control {
			enhanced.open = false
			return true
		}
		return false
	})
}

// OpenPopup returns the enhanced control whose popup is open, or nil.
func (page *Page) OpenPopup() *Enhanced {
	for _, enhanced := range page.enhanced {
		if enhanced.open {
			return enhanced
		}
	}
	return nil
}

// PointerDown handles a pointer press on target (nil for a press that
// hit no control): every popup not belonging to target closes.
func (page *Page) PointerDown(target *Control) {
	for _, enhanced := range page.enhanced {
		if enhanced.control != target {
			enhanced.Close()
		}
	}
}

func (page *Page) registered(enhanced *Enhanced) bool {
	return slices.Contains(page.enhanced, enhanced)
}

// Item is one rendered popup entry.
type Item struct {
	Label    string
	Selected bool
	Colors   tui.ColorPair
	Colored  bool
}

// Enhanced is the interactive view of a control: a trigger showing
// the selection and a popup list.
type Enhanced struct {
	page    *Page
	control *Control
	open    bool

	triggerLabel   string
	triggerColors  tui.ColorPair
	triggerColored bool

	items []Item
}

// Control returns the underlying control.
func (enhanced *Enhanced) Control() *Control {
	return enhanced.control
}

// IsOpen reports whether the popup is showing.
func (enhanced *Enhanced) IsOpen() bool {
	return enhanced.open
}

// TriggerLabel returns the trigger text: the selected option's label
// or Placeholder.
func (enhanced *Enhanced) TriggerLabel() string {
	return enhanced.triggerLabel
}

// TriggerColors returns the trigger colours. ok is false when the
// selection is empty or its label has no entry in the colour table.
func (enhanced *Enhanced) TriggerColors() (tui.ColorPair, bool) {
	return enhanced.triggerColors, enhanced.triggerColored
}

// Items returns the popup entries as of the last Rebuild.
func (enhanced *Enhanced) Items() []Item {
	return slices.Clone(enhanced.items)
}

// Refresh recomputes the trigger from the control's selection.
func (enhanced *Enhanced) Refresh() {
	option, _ := enhanced.control.SelectedOption()
	enhanced.triggerLabel = option.Label
	if enhanced.triggerLabel == "" {
		enhanced.triggerLabel = Placeholder
	}
	enhanced.triggerColors, enhanced.triggerColored = enhanced.colorsFor(option)
}

// Rebuild recomputes the popup entries from the control's options.
func (enhanced *Enhanced) Rebuild() {
	options := enhanced.control.options
	enhanced.items = make([]Item, len(options))
	for index, option := range options {
		label := option.Label
		if label == "" {
			label = Placeholder
		}
		colors, colored := enhanced.colorsFor(option)
		enhanced.items[index] = Item{
			Label:    label,
			Selected: index == enhanced.control.selected,
			Colors:   colors,
			Colored:  colored,
		}
	}
}

// colorsFor looks the label up in the theme's value colours. Options
// with an empty value are never coloured.
func (enhanced *Enhanced) colorsFor(option Option) (tui.ColorPair, bool) {
	if option.Value == "" {
		return tui.ColorPair{}, false
	}
	return enhanced.page.theme.ValueColor(option.Label)
}

// Open shows the popup, closing every other popup on the page first.
func (enhanced *Enhanced) Open() {
	for _, other := range enhanced.page.enhanced {
		if other != enhanced {
			other.open = false
		}
	}
	enhanced.Rebuild()
	enhanced.open = true
}

// Close hides the popup.
func (enhanced *Enhanced) Close() {
	enhanced.open = false
}

// Toggle opens a closed popup and closes an open one.
func (enhanced *Enhanced) Toggle() {
	if enhanced.open {
		enhanced.Close()
	} else {
		enhanced.Open()
	}
}

// SelectAt is a pointer press on popup entry index: the control takes
// the selection, change listeners fire, the trigger refreshes, and
// the popup closes. Returns false for an index outside the options.
func (enhanced *Enhanced) SelectAt(index int) bool {
	if !enhanced.control.SetSelected(index) {
		return false
	}
	enhanced.control.NotifyChange()
	enhanced.Refresh()
	enhanced.Close()
	return true
}

// HandleKey applies a key press to the control. Returns false for keys
// the control does not use.
func (enhanced *Enhanced) HandleKey(key Key) bool {
	switch key {
	case KeyEnter, KeySpace:
		enhanced.Toggle()
	case KeyEscape:
		enhanced.Close()
		enhanced.control.NotifyCancel()
	case KeyUp, KeyDown:
		if !enhanced.open {
			enhanced.Open()
		}
		step := 1
		if key == KeyUp {
			step = -1
		}
		last := len(enhanced.control.options) - 1
		next := min(max(enhanced.control.selected+step, 0), last)
		enhanced.control.SetSelected(next)
		enhanced.Refresh()
		enhanced.Rebuild()
	default:
		return false
	}
	return true
}
