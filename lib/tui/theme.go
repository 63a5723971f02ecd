// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/planboard/lib/schema/project"
)

// ColorPair is a background/foreground pair for a badge or a choice
// trigger.
type ColorPair struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// Style returns a lipgloss style with both colours applied.
func (pair ColorPair) Style() lipgloss.Style {
	return lipgloss.NewStyle().Background(pair.Background).Foreground(pair.Foreground)
}

// Theme defines the colour palette for the board. Chrome colours are
// ANSI 256-colour codes; value colours are hex so they match the
// palette users already know from the board's badges.
type Theme struct {
	// Text colours.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Cursor cell and selected popup item.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Cell being edited.
	EditingBackground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// FlashBackground tints a cell right after a committed edit.
	FlashBackground lipgloss.Color

	// Fuzzy filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Popups and modals.
	PopupForeground lipgloss.Color
	PopupBackground lipgloss.Color

	// Notices.
	NoticeError   ColorPair
	NoticeSuccess ColorPair

	// NeutralBadge is used for empty enumerated values ("--").
	NeutralBadge ColorPair

	// ValueColors maps a displayed value to its badge colours. Values
	// missing from the table render uncoloured.
	ValueColors map[string]ColorPair
}

// ValueColor returns the colour pair for a displayed value. The empty
// value never has colours.
func (theme Theme) ValueColor(value string) (ColorPair, bool) {
	if value == "" {
		return ColorPair{}, false
	}
	pair, ok := theme.ValueColors[value]
	return pair, ok
}

// DefaultValueColors is the badge palette for the enumerated domains.
var DefaultValueColors = map[string]ColorPair{
	project.StatusWaiting:               {Background: "#fef3c7", Foreground: "#b45309"},
	project.StatusInProgress:            {Background: "#dbeafe", Foreground: "#1d4ed8"},
	project.StatusPlansSentForReview:    {Background: "#e0e7ff", Foreground: "#4338ca"},
	project.StatusUpdatedPlansSent:      {Background: "#d1fae5", Foreground: "#047857"},
	project.StatusPlansSentForTender:    {Background: "#f3e8ff", Foreground: "#7c3aed"},
	project.StatusPlansSentForExecution: {Background: "#ccfbf1", Foreground: "#0d9488"},
	project.StatusSpecial:               {Background: "#fce7f3", Foreground: "#db2777"},

	project.PriorityOnHold: {Background: "#f3f4f6", Foreground: "#4b5563"},
	project.PriorityUrgent: {Background: "#fef2f2", Foreground: "#dc2626"},
	project.PriorityNew:    {Background: "#f0fdf4", Foreground: "#16a34a"},

	project.Yes: {Background: "#d1fae5", Foreground: "#047857"},
	project.No:  {Background: "#fef2f2", Foreground: "#dc2626"},
}

// DefaultTheme is the built-in dark-terminal colour scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),
	EditingBackground:  lipgloss.Color("24"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("75"),

	FlashBackground: lipgloss.Color("58"), // dark amber

	SearchHighlightBackground: lipgloss.Color("58"),

	PopupForeground: lipgloss.Color("252"),
	PopupBackground: lipgloss.Color("237"),

	NoticeError:   ColorPair{Background: "#fef2f2", Foreground: "#dc2626"},
	NoticeSuccess: ColorPair{Background: "#d1fae5", Foreground: "#047857"},

	NeutralBadge: ColorPair{Background: lipgloss.Color("238"), Foreground: lipgloss.Color("245")},

	ValueColors: DefaultValueColors,
}
