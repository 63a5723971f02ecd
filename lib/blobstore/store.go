// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("blobstore: key not found")

// ErrCorrupt is returned by Get when a stored value fails its
// integrity check (bad envelope, checksum mismatch, undecodable
// compression).
var ErrCorrupt = errors.New("blobstore: stored value is corrupt")

// Store is a durable key-value blob store.
type Store interface {
	// Get returns the value stored under key. Returns ErrNotFound
	// when absent and an error wrapping ErrCorrupt when the stored
	// bytes fail their integrity check.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value. The
	// write is durable when Put returns nil.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// keyPattern restricts keys to characters that are safe as file
// names, SQL text, and Redis keys without escaping.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateKey rejects keys outside [A-Za-z0-9_.-], empty keys, keys
// longer than 128 bytes, and the path components "." and "..".
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("blobstore: invalid key %q", key)
	}
	return nil
}
