// Package redissession implements repository.SessionRepository on redis.
// Session records live under a configurable key prefix with a TTL applied at
// SET time, so expiry needs no sweeping of our own.
package redissession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"community-board/internal/domain"
	"community-board/internal/repository"
)

// RedisSessionRepository stores sessions as JSON values keyed by session ID.
type RedisSessionRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionRepository creates the repository. keyPrefix namespaces the
// keys when the redis instance is shared.
func NewRedisSessionRepository(client *redis.Client, keyPrefix string) *RedisSessionRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisSessionRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "cb:"
	}
	return &RedisSessionRepository{client: client, keyPrefix: keyPrefix}
}

func (r *RedisSessionRepository) sessionKey(id string) string {
	return fmt.Sprintf("%ssession:%s", r.keyPrefix, id)
}

// Save stores the session with the given TTL. ExpiresAt is derived from ttl
// so both store implementations enforce the same deadline.
func (r *RedisSessionRepository) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	session.ExpiresAt = time.Now().Add(ttl)
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis: marshal session %s: %w", session.ID, err)
	}
	key := r.sessionKey(session.ID)
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: save session to %s: %w", key, err)
	}
	return nil
}

// Find loads the session; a missing or expired key maps to
// repository.ErrSessionNotFound.
func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	key := r.sessionKey(id)
	payload, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis: get session from %s: %w", key, err)
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("redis: unmarshal session from %s: %w", key, err)
	}
	return &session, nil
}

// Delete invalidates the session. DEL on a missing key is a no-op.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	key := r.sessionKey(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis: delete session %s: %w", key, err)
	}
	return nil
}
