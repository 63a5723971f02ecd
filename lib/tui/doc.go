// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// board's screens: the colour theme (including the value-to-colour
// table used for badges and choice controls), the commit flash
// tracker, overlay splicing for popups and modals, text sanitizing,
// and fuzzy matching for the row filter.
//
// Nothing here knows about bubbletea models or the record store.
// lib/choice renders its trigger and popup with this package's theme;
// lib/gridui composes the screen from these pieces.
package tui
