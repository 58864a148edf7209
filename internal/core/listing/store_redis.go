// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomishelf/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a Redis-backed listing session store.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

/*
Get retrieves the state stored for a listing session.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - State: Decoded state
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, id string) (State, error) {
	payload, err := repository.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, errSessionNotFound()
		}
		return State{}, fmt.Errorf("redis_listing_get_failed: %w", err)
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, fmt.Errorf("redis_listing_decode_failed: %w", err)
	}
	return state, nil
}

// Save stores the state and refreshes its TTL.
func (repository *RedisSessionRepository) Save(context context.Context, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis_listing_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(state.ID), payload, repository.ttl).Err(); err != nil {
		return fmt.Errorf("redis_listing_set_failed: %w", err)
	}
	return nil
}

// Delete removes the session from Redis.
func (repository *RedisSessionRepository) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_listing_delete_failed: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return constants.RedisPrefixListing + id
}
