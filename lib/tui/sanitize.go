// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes user-supplied text safe to embed in a rendered view.
// ANSI escape sequences are removed, newlines and tabs become spaces,
// other control characters and bidi controls are dropped, so a value
// can neither restyle the terminal nor break the grid's line layout.
func Sanitize(text string) string {
	stripped := ansi.Strip(text)
	var builder strings.Builder
	builder.Grow(len(stripped))
	for _, character := range stripped {
		switch {
		case character == '\n' || character == '\r' || character == '\t':
			builder.WriteRune(' ')
		case unicode.IsControl(character):
		case unicode.Is(unicode.Bidi_Control, character):
			// Bidi overrides and isolates would reorder the rest of
			// the row.
		default:
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

// Excerpt sanitizes text and truncates it to maxWidth columns, ending
// with an ellipsis when truncated.
func Excerpt(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	clean := Sanitize(text)
	if ansi.StringWidth(clean) > maxWidth {
		return ansi.Truncate(clean, maxWidth, "…")
	}
	return clean
}
