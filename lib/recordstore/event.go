// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package recordstore

import "slices"

// EventKind identifies the mutation an Event reports.
type EventKind int

const (
	// EventPut reports a single field change at Index.
	EventPut EventKind = iota
	// EventAppend reports a new record at Index (the last position).
	EventAppend
	// EventRemove reports that the record previously at Index is
	// gone and later records have shifted down by one.
	EventRemove
	// EventReset reports that the whole list was replaced (Load).
	// Index is -1.
	EventReset
)

func (kind EventKind) String() string {
	switch kind {
	case EventPut:
		return "put"
	case EventAppend:
		return "append"
	case EventRemove:
		return "remove"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes a successful mutation.
type Event struct {
	Kind  EventKind
	Index int
}

// Listener receives events synchronously, after the mutation is
// durable.
type Listener func(Event)

// Subscribe registers listener and returns a function that removes
// it. Listeners are called in subscription order.
func (store *Store) Subscribe(listener Listener) (unsubscribe func()) {
	store.nextListenerID++
	id := store.nextListenerID
	store.listeners = append(store.listeners, subscription{id: id, listener: listener})
	return func() {
		store.listeners = slices.DeleteFunc(store.listeners, func(entry subscription) bool {
			return entry.id == id
		})
	}
}

func (store *Store) emit(event Event) {
	for _, entry := range slices.Clone(store.listeners) {
		entry.listener(event)
	}
}
