// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult holds a fuzzy match outcome. Score is 0 for no match.
// Positions are rune indices into the matched text.
type FuzzyResult struct {
	Score     int
	Positions []int
}

var fuzzyInit sync.Once

// FuzzyMatch runs fzf's V2 algorithm, case-insensitively, over text.
// An empty pattern scores 0. The slab may be nil; passing one reused
// across calls avoids per-call allocation when filtering many rows.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	fuzzyInit.Do(func() { algo.Init("default") })

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}
	fuzzy := FuzzyResult{Score: result.Score}
	if positions != nil {
		fuzzy.Positions = *positions
	}
	return fuzzy
}
