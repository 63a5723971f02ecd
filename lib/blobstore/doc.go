// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package blobstore is the durable key-value store behind the board.
// The board keeps its whole record list as one blob under one key, so
// the interface is deliberately minimal: Get, Put, Delete.
//
// Backends:
//
//   - [FileStore]: one file per key in a data directory, written
//     atomically (temp file, fsync, rename, directory fsync). Each file
//     is an envelope carrying a compression tag (none, lz4, zstd) and
//     a BLAKE3 checksum of the payload, so truncated or bit-flipped
//     files are reported as [ErrCorrupt] rather than decoded.
//   - [SQLiteStore]: a single blobs table in a SQLite database opened
//     through lib/sqlitepool, with a BLAKE3 checksum column.
//   - [RedisStore]: a Redis key per blob, for boards whose data lives
//     on a shared host. Durability follows the server's persistence
//     configuration.
//   - [MemoryStore]: for tests.
//
// Every Put returns only after the backend has accepted the write
// durably (as far as the backend can promise). There is no batching.
package blobstore
