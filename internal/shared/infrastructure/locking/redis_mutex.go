package locking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when the lock is already held by another owner.
var ErrNotAcquired = fmt.Errorf("lock not acquired")

// Mutex provides short-lived distributed locks keyed by resource name.
type Mutex interface {
	// Acquire takes the lock for the given key, returning a release function.
	// ErrNotAcquired is returned if another owner currently holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// RedisMutex implements Mutex on Redis using SET NX with a TTL. Each lock
// value carries an owner token so a release never deletes a lock that has
// expired and been re-acquired by someone else.
type RedisMutex struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisMutex creates a Redis-backed mutex.
func NewRedisMutex(client *redis.Client, logger *slog.Logger) *RedisMutex {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisMutex{client: client, logger: logger}
}

// releaseScript deletes the lock only if the owner token still matches.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

// Acquire takes the lock or fails fast with ErrNotAcquired.
func (m *RedisMutex) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()

	ok, err := m.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	release := func() {
		// Release uses a fresh context so a cancelled request still unlocks.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, m.client, []string{key}, token).Err(); err != nil {
			m.logger.Warn("failed to release lock", "key", key, "error", err)
		}
	}

	return release, nil
}

// NoopMutex always grants the lock. Used when Redis is not configured;
// correctness then rests on the database row locks alone.
type NoopMutex struct{}

// NewNoopMutex creates a mutex that never blocks.
func NewNoopMutex() *NoopMutex {
	return &NoopMutex{}
}

// Acquire always succeeds.
func (m *NoopMutex) Acquire(_ context.Context, _ string, _ time.Duration) (func(), error) {
	return func() {}, nil
}
