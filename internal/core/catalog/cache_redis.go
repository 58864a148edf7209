// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomishelf/internal/platform/constants"
)

// cachedSnapshot is the JSON document stored under [constants.RedisKeySnapshot].
type cachedSnapshot struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Entries  []Entry   `json:"entries"`
}

// RedisSnapshotCache implements [SnapshotCache] using Redis.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a Redis-backed snapshot cache whose entries
// expire after ttl.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

/*
Get returns the cached snapshot.

Returns:
  - *Snapshot: nil on a cache miss
  - error: Connectivity or decoding errors
*/
func (cache *RedisSnapshotCache) Get(context context.Context) (*Snapshot, error) {
	payload, err := cache.client.Get(context, constants.RedisKeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_snapshot_get_failed: %w", err)
	}

	var document cachedSnapshot
	if err := json.Unmarshal(payload, &document); err != nil {
		return nil, fmt.Errorf("redis_snapshot_decode_failed: %w", err)
	}

	snapshot := NewSnapshot(document.Entries, document.LoadedAt)

	// A document written by an older encoder is treated as a miss
	if snapshot.Version() != document.Version {
		return nil, nil
	}

	return snapshot, nil
}

// Set stores the snapshot with the configured TTL.
func (cache *RedisSnapshotCache) Set(context context.Context, snapshot *Snapshot) error {
	payload, err := json.Marshal(cachedSnapshot{
		Version:  snapshot.Version(),
		LoadedAt: snapshot.LoadedAt(),
		Entries:  snapshot.entries,
	})
	if err != nil {
		return fmt.Errorf("redis_snapshot_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeySnapshot, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_set_failed: %w", err)
	}
	return nil
}

// Delete drops the cached snapshot so the next read goes to PostgreSQL.
func (cache *RedisSnapshotCache) Delete(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeySnapshot).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_delete_failed: %w", err)
	}
	return nil
}
