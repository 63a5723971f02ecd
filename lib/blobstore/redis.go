// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each blob as a plain Redis string under
// prefix+key, with no expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures [OpenRedisStore].
type RedisOptions struct {
	// Addr is host:port of the Redis server.
	Addr string

	// DB selects the logical database.
	DB int

	// Prefix is prepended to every key, e.g. "planboard:".
	Prefix string
}

// OpenRedisStore connects to Redis and pings it so configuration
// mistakes surface at startup rather than on the first write.
func OpenRedisStore(ctx context.Context, options RedisOptions) (*RedisStore, error) {
	if options.Addr == "" {
		return nil, fmt.Errorf("blobstore: redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr: options.Addr,
		DB:   options.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("blobstore: connecting to redis at %s: %w", options.Addr, err)
	}
	return &RedisStore{client: client, prefix: options.Prefix}, nil
}

// Get implements Store.
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	value, err := store.client.Get(ctx, store.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore: reading %s: %w", key, err)
	}
	return value, nil
}

// Put implements Store.
func (store *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := store.client.Set(ctx, store.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("blobstore: writing %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (store *RedisStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := store.client.Del(ctx, store.prefix+key).Err(); err != nil {
		return fmt.Errorf("blobstore: deleting %s: %w", key, err)
	}
	return nil
}

// Close implements Store.
func (store *RedisStore) Close() error {
	return store.client.Close()
}
