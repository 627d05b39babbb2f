package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/redis/go-redis/v9"
)

// saveTTL is how long an untouched save survives. Every SaveSession
// refreshes it.
const saveTTL = 30 * 24 * time.Hour

// latestKey points at the most recently saved session ID. The resume
// flow loads it by passing uuid.Nil to LoadSession.
const latestKey = "session:latest"

// RedisStore implements Storage using Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisStore) SaveSession(ctx context.Context, snap *session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal session", "id", snap.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(snap.ID), data, saveTTL).Err(); err != nil {
		r.logger.Error("Failed to save session", "id", snap.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := r.client.Set(ctx, latestKey, snap.ID.String(), saveTTL).Err(); err != nil {
		r.logger.Error("Failed to update latest session pointer", "id", snap.ID, "error", err)
		return fmt.Errorf("failed to update latest session pointer: %w", err)
	}
	return nil
}

// LoadSession returns the snapshot for id. A uuid.Nil id resolves the
// most recently saved session via the latest pointer.
func (r *RedisStore) LoadSession(ctx context.Context, id uuid.UUID) (*session.Snapshot, error) {
	if id == uuid.Nil {
		val, err := r.client.Get(ctx, latestKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, nil
			}
			r.logger.Error("Failed to load latest session pointer", "error", err)
			return nil, fmt.Errorf("failed to load latest session pointer: %w", err)
		}
		id, err = uuid.Parse(val)
		if err != nil {
			r.logger.Error("Invalid latest session pointer", "value", val, "error", err)
			return nil, fmt.Errorf("invalid latest session pointer %q: %w", val, err)
		}
	}

	data, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Session not found", "id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.logger.Error("Failed to unmarshal session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snap, nil
}

func (r *RedisStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}
