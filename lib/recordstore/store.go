// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package recordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bureau-foundation/planboard/lib/blobstore"
	"github.com/bureau-foundation/planboard/lib/codec"
	"github.com/bureau-foundation/planboard/lib/schema/project"
)

// DefaultKey is the blob key the record list is stored under.
const DefaultKey = "pm_projectsData"

// ErrInvalidIndex is returned when an index does not address an
// existing record.
var ErrInvalidIndex = errors.New("record index out of range")

// Config holds the parameters for [New]. Blobs is required.
type Config struct {
	Blobs blobstore.Store

	// Key defaults to DefaultKey.
	Key string

	// Format defaults to JSON.
	Format codec.Format

	// Seed supplies the records used when the blob is absent or
	// corrupt. Defaults to project.DefaultRecords.
	Seed func() []project.Record

	// Logger defaults to discarding.
	Logger *slog.Logger
}

// Store is the in-memory record list backed by a durable blob.
type Store struct {
	blobs  blobstore.Store
	key    string
	format codec.Format
	seed   func() []project.Record
	logger *slog.Logger

	records []project.Record

	listeners      []subscription
	nextListenerID int
}

type subscription struct {
	id       int
	listener Listener
}

// New creates a store. Call Load before use.
func New(cfg Config) (*Store, error) {
	if cfg.Blobs == nil {
		return nil, fmt.Errorf("recordstore: Blobs is required")
	}
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	if err := blobstore.ValidateKey(key); err != nil {
		return nil, fmt.Errorf("recordstore: %w", err)
	}
	format, err := codec.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("recordstore: %w", err)
	}
	seed := cfg.Seed
	if seed == nil {
		seed = project.DefaultRecords
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		blobs:  cfg.Blobs,
		key:    key,
		format: format,
		seed:   seed,
		logger: logger,
	}, nil
}

// Load reads the persisted list. An absent blob, a blob that fails
// its integrity check, and a blob that does not decode all fall back
// to the seed dataset, which is then persisted. Other storage errors
// (unreachable backend, permission denied) are returned.
func (store *Store) Load(ctx context.Context) error {
	data, err := store.blobs.Get(ctx, store.key)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		store.logger.Info("no persisted records, seeding defaults", "key", store.key)
		return store.reseed(ctx)
	case errors.Is(err, blobstore.ErrCorrupt):
		store.logger.Warn("persisted records are corrupt, reseeding defaults", "key", store.key, "error", err)
		return store.reseed(ctx)
	case err != nil:
		return fmt.Errorf("recordstore: loading %s: %w", store.key, err)
	}

	var records []project.Record
	if err := codec.Unmarshal(store.format, data, &records); err != nil {
		store.logger.Warn("persisted records do not decode, reseeding defaults",
			"key", store.key, "format", store.format, "error", err)
		return store.reseed(ctx)
	}
	store.records = records
	store.logger.Debug("records loaded", "key", store.key, "count", len(records))
	store.emit(Event{Kind: EventReset, Index: -1})
	return nil
}

func (store *Store) reseed(ctx context.Context) error {
	store.records = store.seed()
	if err := store.persist(ctx); err != nil {
		return err
	}
	store.emit(Event{Kind: EventReset, Index: -1})
	return nil
}

// All returns a copy of the ordered record list.
func (store *Store) All() []project.Record {
	return slices.Clone(store.records)
}

// Len returns the number of records.
func (store *Store) Len() int {
	return len(store.records)
}

// At returns a copy of the record at index.
func (store *Store) At(index int) (project.Record, error) {
	if index < 0 || index >= len(store.records) {
		return project.Record{}, fmt.Errorf("recordstore: index %d of %d: %w", index, len(store.records), ErrInvalidIndex)
	}
	return store.records[index], nil
}

// Append adds record at the end and persists. No identifier is
// assigned; the record is stored as given.
func (store *Store) Append(ctx context.Context, record project.Record) error {
	store.records = append(store.records, record)
	if err := store.persist(ctx); err != nil {
		store.records = store.records[:len(store.records)-1]
		return err
	}
	store.logger.Info("record appended", "index", len(store.records)-1, "project_number", record.Number)
	store.emit(Event{Kind: EventAppend, Index: len(store.records) - 1})
	return nil
}

// UpdateField sets one field of the record at index and persists.
func (store *Store) UpdateField(ctx context.Context, index int, field project.Field, value string) error {
	if index < 0 || index >= len(store.records) {
		store.logger.Warn("update of missing record ignored", "index", index, "field", field, "count", len(store.records))
		return fmt.Errorf("recordstore: index %d of %d: %w", index, len(store.records), ErrInvalidIndex)
	}
	previous, err := store.records[index].Get(field)
	if err != nil {
		return fmt.Errorf("recordstore: %w", err)
	}
	store.records[index].Set(field, value)
	if err := store.persist(ctx); err != nil {
		store.records[index].Set(field, previous)
		return err
	}
	store.logger.Debug("record field updated", "index", index, "field", field)
	store.emit(Event{Kind: EventPut, Index: index})
	return nil
}

// RemoveAt deletes the record at index, shifting later records down,
// and persists.
func (store *Store) RemoveAt(ctx context.Context, index int) error {
	if index < 0 || index >= len(store.records) {
		store.logger.Warn("removal of missing record ignored", "index", index, "count", len(store.records))
		return fmt.Errorf("recordstore: index %d of %d: %w", index, len(store.records), ErrInvalidIndex)
	}
	previous := slices.Clone(store.records)
	store.records = slices.Delete(store.records, index, index+1)
	if err := store.persist(ctx); err != nil {
		store.records = previous
		return err
	}
	store.logger.Info("record removed", "index", index, "project_number", previous[index].Number)
	store.emit(Event{Kind: EventRemove, Index: index})
	return nil
}

func (store *Store) persist(ctx context.Context) error {
	records := store.records
	if records == nil {
		records = []project.Record{}
	}
	data, err := codec.Marshal(store.format, records)
	if err != nil {
		return fmt.Errorf("recordstore: encoding records: %w", err)
	}
	if err := store.blobs.Put(ctx, store.key, data); err != nil {
		store.logger.Error("persisting records failed", "key", store.key, "error", err)
		return fmt.Errorf("recordstore: persisting %s: %w", store.key, err)
	}
	return nil
}
