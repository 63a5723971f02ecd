// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by [Open].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend for [Open]. Only the
// fields relevant to Backend are read.
type Options struct {
	Backend string

	// Directory and Compression configure the file backend.
	Directory   string
	Compression Compression

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	// Redis configures the redis backend.
	Redis RedisOptions

	Logger *slog.Logger
}

// Open constructs the backend named by options.Backend.
func Open(ctx context.Context, options Options) (Store, error) {
	switch options.Backend {
	case BackendFile, "":
		return NewFileStore(options.Directory, options.Compression)
	case BackendSQLite:
		return OpenSQLiteStore(options.SQLitePath, options.Logger)
	case BackendRedis:
		return OpenRedisStore(ctx, options.Redis)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("blobstore: unknown backend %q", options.Backend)
	}
}
