// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// DefaultFlashDuration is how long a cell stays tinted after a
// committed edit.
const DefaultFlashDuration = 800 * time.Millisecond

// FlashTickInterval is the re-render interval while anything is
// flashing.
const FlashTickInterval = 100 * time.Millisecond

// FlashTracker maps item keys to the time they were last changed. An
// ignited item is flashing until the duration has elapsed.
type FlashTracker struct {
	duration time.Duration
	entries  map[string]time.Time
}

// NewFlashTracker creates an empty tracker. A non-positive duration
// selects DefaultFlashDuration.
func NewFlashTracker(duration time.Duration) *FlashTracker {
	if duration <= 0 {
		duration = DefaultFlashDuration
	}
	return &FlashTracker{
		duration: duration,
		entries:  make(map[string]time.Time),
	}
}

// Duration returns the flash length.
func (tracker *FlashTracker) Duration() time.Duration {
	return tracker.duration
}

// Ignite starts (or restarts) the flash for key.
func (tracker *FlashTracker) Ignite(key string, now time.Time) {
	tracker.entries[key] = now
}

// Intensity is 1.0 at ignition, decaying linearly to 0.0 over the
// flash duration. Keys never ignited or fully decayed return 0.
func (tracker *FlashTracker) Intensity(key string, now time.Time) float64 {
	ignition, exists := tracker.entries[key]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= tracker.duration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(tracker.duration)
}

// Flashing reports whether key is still within its flash.
func (tracker *FlashTracker) Flashing(key string, now time.Time) bool {
	return tracker.Intensity(key, now) > 0
}

// HasActive reports whether any key is still flashing, garbage
// collecting expired entries on the way. The caller keeps its tick
// running while this is true.
func (tracker *FlashTracker) HasActive(now time.Time) bool {
	active := false
	for key, ignition := range tracker.entries {
		if now.Sub(ignition) < tracker.duration {
			active = true
			continue
		}
		delete(tracker.entries, key)
	}
	return active
}

// Clear forgets every entry. Used when row positions shift.
func (tracker *FlashTracker) Clear() {
	clear(tracker.entries)
}
