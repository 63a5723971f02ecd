// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeebo/blake3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/bureau-foundation/planboard/lib/sqlitepool"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS blobs (
	key      TEXT PRIMARY KEY,
	value    BLOB NOT NULL,
	checksum BLOB NOT NULL
);`

// SQLiteStore keeps blobs in a single table. Durability comes from
// the pool's WAL journal with synchronous=FULL.
type SQLiteStore struct {
	pool *sqlitepool.Pool
}

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, sqliteSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: %w", err)
	}
	return &SQLiteStore{pool: pool}, nil
}

// Get implements Store.
func (store *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var value, checksum []byte
	found := false
	err := store.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "SELECT value, checksum FROM blobs WHERE key = ?", &sqlitex.ExecOptions{
			Args: []any{key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				value = make([]byte, stmt.ColumnLen(0))
				stmt.ColumnBytes(0, value)
				checksum = make([]byte, stmt.ColumnLen(1))
				stmt.ColumnBytes(1, checksum)
				return nil
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: reading %s: %w", key, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	sum := blake3.Sum256(value)
	if string(sum[:]) != string(checksum) {
		return nil, fmt.Errorf("blobstore: %s: %w: checksum mismatch", key, ErrCorrupt)
	}
	return value, nil
}

// Put implements Store. The row is replaced in one statement, so a
// reader sees either the old blob or the new one.
func (store *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	sum := blake3.Sum256(value)
	if value == nil {
		value = []byte{}
	}
	err := store.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO blobs (key, value, checksum) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, checksum = excluded.checksum`,
			&sqlitex.ExecOptions{Args: []any{key, value, sum[:]}})
	})
	if err != nil {
		return fmt.Errorf("blobstore: writing %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (store *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := store.pool.Do(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, "DELETE FROM blobs WHERE key = ?", &sqlitex.ExecOptions{Args: []any{key}})
	})
	if err != nil {
		return fmt.Errorf("blobstore: deleting %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (store *SQLiteStore) Close() error {
	return store.pool.Close()
}
