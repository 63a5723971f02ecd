// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "pm_projectsData"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: got %v, want ErrNotFound", err)
	}

	first := []byte(`[{"project_number":"1001"}]`)
	if err := store.Put(ctx, "pm_projectsData", first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, "pm_projectsData")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, first) {
		t.Errorf("Get = %q, want %q", got, first)
	}

	second := []byte(strings.Repeat(`{"project":"מגדל"},`, 200))
	if err := store.Put(ctx, "pm_projectsData", second); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = store.Get(ctx, "pm_projectsData")
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Errorf("overwrite not visible: got %d bytes, want %d", len(got), len(second))
	}

	if err := store.Put(ctx, "empty", nil); err != nil {
		t.Fatalf("Put empty value: %v", err)
	}
	got, err = store.Get(ctx, "empty")
	if err != nil {
		t.Fatalf("Get empty value: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty value round-tripped as %q", got)
	}

	if err := store.Delete(ctx, "pm_projectsData"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "pm_projectsData"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "pm_projectsData"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}

	if err := store.Put(ctx, "../escape", first); err == nil {
		t.Error("Put accepted a key with a path separator")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	value := []byte("abc")
	if err := store.Put(ctx, "key", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'X'
	got, _ := store.Get(ctx, "key")
	got[1] = 'Y'
	again, _ := store.Get(ctx, "key")
	if string(again) != "abc" {
		t.Errorf("stored value aliased caller memory: %q", again)
	}
}

func TestFileStore(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			store, err := NewFileStore(filepath.Join(t.TempDir(), "data"), compression)
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}
			exerciseStore(t, store)
		})
	}
}

func TestFileStoreLeavesNoTemporaryFile(t *testing.T) {
	directory := t.TempDir()
	store, err := NewFileStore(directory, CompressionZstd)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(context.Background(), "board", []byte("value")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "board"+blobSuffix {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("directory contents = %v, want only board%s", names, blobSuffix)
	}
}

func TestFileStoreDetectsCorruption(t *testing.T) {
	ctx := context.Background()
	value := []byte(strings.Repeat("status=בעבודה;", 64))

	tests := []struct {
		name    string
		corrupt func([]byte) []byte
	}{
		{"flipped payload byte", func(data []byte) []byte {
			data[len(data)-1] ^= 0xff
			return data
		}},
		{"flipped checksum byte", func(data []byte) []byte {
			data[10] ^= 0x01
			return data
		}},
		{"truncated", func(data []byte) []byte {
			return data[:envelopeHeaderSize-1]
		}},
		{"not an envelope", func([]byte) []byte {
			return []byte(`[{"project_number":"1"}]`)
		}},
		{"wrong size", func(data []byte) []byte {
			data[8]++
			return data
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store, err := NewFileStore(t.TempDir(), CompressionLZ4)
			if err != nil {
				t.Fatal(err)
			}
			if err := store.Put(ctx, "board", value); err != nil {
				t.Fatal(err)
			}
			path := store.Path("board")
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, test.corrupt(data), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Get(ctx, "board"); !errors.Is(err, ErrCorrupt) {
				t.Errorf("Get = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestSealEnvelopeFallsBackForIncompressibleData(t *testing.T) {
	// Short, high-entropy input does not shrink under either codec.
	value := []byte{0x9c, 0x01, 0xf3, 0x77, 0x42}
	for _, compression := range []Compression{CompressionLZ4, CompressionZstd} {
		envelope, err := sealEnvelope(value, compression)
		if err != nil {
			t.Fatalf("%s: %v", compression, err)
		}
		if Compression(envelope[4]) != CompressionNone {
			t.Errorf("%s: tag = %s, want none", compression, Compression(envelope[4]))
		}
		opened, err := openEnvelope(envelope)
		if err != nil {
			t.Fatalf("%s: open: %v", compression, err)
		}
		if !bytes.Equal(opened, value) {
			t.Errorf("%s: round trip = %x, want %x", compression, opened, value)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]Compression{"": CompressionNone, "none": CompressionNone, "lz4": CompressionLZ4, "zstd": CompressionZstd} {
		got, err := ParseCompression(name)
		if err != nil || got != want {
			t.Errorf("ParseCompression(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression accepted gzip")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "board.db"), nil)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	store, err := OpenRedisStore(context.Background(), RedisOptions{Addr: server.Addr(), Prefix: "planboard:"})
	if err != nil {
		t.Fatalf("OpenRedisStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)

	if err := store.Put(context.Background(), "board", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if !server.Exists("planboard:board") {
		t.Error("value not stored under the prefixed key")
	}
}

func TestOpenRedisStoreUnreachable(t *testing.T) {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := server.Addr()
	server.Close()

	if _, err := OpenRedisStore(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Error("OpenRedisStore succeeded against a stopped server")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Options{Backend: BackendFile, Directory: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Errorf("file backend returned %T", store)
	}
	store, err = Open(ctx, Options{Backend: BackendMemory})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("memory backend returned %T", store)
	}
	if _, err := Open(ctx, Options{Backend: "s3"}); err == nil {
		t.Error("Open accepted an unknown backend")
	}
}
