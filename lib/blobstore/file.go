// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// blobSuffix is appended to keys to form file names.
const blobSuffix = ".blob"

// FileStore stores each key as one envelope file in a directory.
// FileStore is not safe for concurrent writers to the same key; the
// board has exactly one writer.
type FileStore struct {
	directory   string
	compression Compression
}

// NewFileStore creates the data directory (mode 0700) if needed and
// returns a store writing with the given compression.
func NewFileStore(directory string, compression Compression) (*FileStore, error) {
	if directory == "" {
		return nil, fmt.Errorf("blobstore: file store directory is required")
	}
	if _, err := compress(nil, compression); err != nil && !errors.Is(err, errIncompressible) {
		return nil, fmt.Errorf("blobstore: %w", err)
	}
	if err := os.MkdirAll(directory, 0700); err != nil {
		return nil, fmt.Errorf("blobstore: creating %s: %w", directory, err)
	}
	return &FileStore{directory: directory, compression: compression}, nil
}

// Path returns the file backing key.
func (store *FileStore) Path(key string) string {
	return filepath.Join(store.directory, key+blobSuffix)
}

// Get implements Store.
func (store *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	envelope, err := os.ReadFile(store.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore: reading %s: %w", key, err)
	}
	value, err := openEnvelope(envelope)
	if err != nil {
		return nil, fmt.Errorf("blobstore: %s: %w", key, err)
	}
	return value, nil
}

// Put implements Store. The envelope is written to a temporary file,
// synced, closed, renamed over the destination, and the directory is
// synced so the rename itself survives power loss.
func (store *FileStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	envelope, err := sealEnvelope(value, store.compression)
	if err != nil {
		return fmt.Errorf("blobstore: sealing %s: %w", key, err)
	}

	finalPath := store.Path(key)
	temporaryPath := finalPath + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("blobstore: creating temporary file for %s: %w", key, err)
	}
	if _, err := file.Write(envelope); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("blobstore: writing %s: %w", key, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("blobstore: syncing %s: %w", key, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("blobstore: closing %s: %w", key, err)
	}
	if err := os.Rename(temporaryPath, finalPath); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("blobstore: renaming %s into place: %w", key, err)
	}

	directory, err := os.Open(store.directory)
	if err == nil {
		directory.Sync()
		directory.Close()
	}
	return nil
}

// Delete implements Store.
func (store *FileStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(store.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blobstore: deleting %s: %w", key, err)
	}
	return nil
}

// Close implements Store. The file store holds no open handles.
func (store *FileStore) Close() error {
	return nil
}
