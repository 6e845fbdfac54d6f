// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/rmc/internal/platform/constants"
)

// RedisStore implements [Store] using Redis string keys with a TTL.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a new Redis-backed session [Store].
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

/*
Load fetches and decodes the session payload.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - Data: Empty when the key is absent or expired
  - error: Connectivity or decoding failures
*/
func (repository *RedisStore) Load(context context.Context, sessionID string) (Data, error) {

	key := sessionKey(sessionID)

	payload, err := repository.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Data{}, nil
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	data := Data{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return data, nil
}

/*
Save encodes the session payload and stores it with the given TTL.

Parameters:
  - context: context.Context
  - sessionID: string
  - data: Data
  - timeToLive: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisStore) Save(context context.Context, sessionID string, data Data, timeToLive time.Duration) error {

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, sessionKey(sessionID), payload, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

// Destroy removes the session key. Deleting an absent key is not an error.
func (repository *RedisStore) Destroy(context context.Context, sessionID string) error {
	if err := repository.client.Del(context, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixSession, sessionID)
}
