// Copyright (c) 2026 Otakurin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/otakurin/internal/platform/clock"
	"github.com/taibuivan/otakurin/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements [SessionRepository] with one expiring
// key per session.
type RedisSessionRepository struct {
	client *redis.Client
	clock  clock.Clock
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client, clk clock.Clock) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, clock: clk}
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

// Create stores the session until it expires. An already expired session
// is not stored.
func (repository *RedisSessionRepository) Create(ctx context.Context, session *Session) error {
	ttl := session.ExpiresAt.Sub(repository.clock.Now())
	if ttl <= 0 {
		return nil
	}

	if err := repository.client.Set(ctx, sessionKey(session.ID), session.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

// Exists reports whether the session is still live.
func (repository *RedisSessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := repository.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_exists_failed: %w", err)
	}
	return count == 1, nil
}

// Delete ends the session. Deleting a missing session is not an error.
func (repository *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := repository.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
