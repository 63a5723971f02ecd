// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool opens SQLite databases for the board's local
// storage backends.
//
// It wraps zombiezen.com/go/sqlite's sqlitex.Pool and applies one set
// of pragmas to every connection:
//
//   - journal_mode=WAL: readers never block the writer.
//   - synchronous=FULL: a committed transaction is on disk before the
//     commit returns. The record store promises write-through
//     durability, so NORMAL's "survives process crash only" is not
//     enough here.
//   - busy_timeout=5000: wait for a competing writer instead of
//     failing with SQLITE_BUSY.
//   - foreign_keys=OFF and temp_store=MEMORY.
//
// Usage:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   filepath.Join(dataDir, "board.db"),
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
//
// Callers write SQL directly with sqlitex.Execute; there is no query
// builder.
package sqlitepool
