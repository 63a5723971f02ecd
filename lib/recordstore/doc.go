// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package recordstore holds the board's ordered list of project
// records and keeps it in step with a durable blob.
//
// The whole list is serialized (JSON by default, CBOR optionally via
// lib/codec) and written under a single key of a [blobstore.Store]
// after every mutation. There is no batching and no background
// flushing: when Append, UpdateField, or RemoveAt returns nil the
// change is durable. When the write fails the in-memory mutation is
// rolled back and the error returned, so memory never runs ahead of
// storage.
//
// Load tolerates a missing or corrupt blob by reseeding from the
// default dataset; corruption is logged at warn level and is not an
// error.
//
// Listeners registered with Subscribe receive an [Event] after every
// successful mutation, naming the affected index, so a view can
// re-render exactly the rows that changed.
//
// Store is not safe for concurrent use. The board drives it from its
// single UI event loop.
package recordstore
