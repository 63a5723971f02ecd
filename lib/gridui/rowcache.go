// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"github.com/bureau-foundation/planboard/lib/recordstore"
	"github.com/bureau-foundation/planboard/lib/schema/project"
	"github.com/bureau-foundation/planboard/lib/tui"
)

// rowCache holds the display rendering of each row's cells, keyed by
// store index. Cells that are under the cursor, being edited, or
// flashing are rendered fresh each frame on top of the cache.
type rowCache struct {
	cells map[int][]string

	// dirty is set by every store event; the model recomputes its
	// visible rows when it sees it.
	dirty bool

	// renders counts cache misses, for tests.
	renders int
}

func newRowCache() *rowCache {
	return &rowCache{cells: make(map[int][]string)}
}

// row returns the cached cells for index, rendering them on a miss.
func (cache *rowCache) row(theme tui.Theme, index int, record project.Record) []string {
	if cells, ok := cache.cells[index]; ok {
		return cells
	}
	cells := make([]string, len(columns))
	for position, column := range columns {
		cells[position] = renderDisplayCell(theme, column.field, record.Value(column.field), column.width)
	}
	cache.cells[index] = cells
	cache.renders++
	return cells
}

// invalidate drops the rows an event affects: the one row for a put,
// every row from the index on for an append or remove, everything for
// a reset.
func (cache *rowCache) invalidate(event recordstore.Event) {
	cache.dirty = true
	switch event.Kind {
	case recordstore.EventPut:
		delete(cache.cells, event.Index)
	case recordstore.EventAppend, recordstore.EventRemove:
		for index := range cache.cells {
			if index >= event.Index {
				delete(cache.cells, index)
			}
		}
	default:
		clear(cache.cells)
	}
}
