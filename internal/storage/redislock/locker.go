// Package redislock serializes order placement per user with a Redis key.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
)

const keyPrefix = "electrohub:order-lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`

// client is the subset of *redis.Client the locker needs.
type client interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	Close() error
}

// Locker holds one Redis key per user while an order is being placed.
type Locker struct {
	client client
	ttl    time.Duration
	logger *slog.Logger
}

// New constructs Locker on top of an existing client.
func New(c client, ttl time.Duration, logger *slog.Logger) *Locker {
	return &Locker{client: c, ttl: ttl, logger: logger}
}

// Lock acquires the user's key or returns ErrOrderInProgress when it is held.
func (l *Locker) Lock(ctx context.Context, userID string) (func(), error) {
	key := keyPrefix + userID
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, domainErrors.ErrOrderInProgress
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := l.client.Eval(releaseCtx, releaseScript, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.logger.Warn("failed to release order lock", slog.String("user_id", userID), slog.Any("error", err))
		}
	}, nil
}

// Close releases the underlying client.
func (l *Locker) Close() error {
	return l.client.Close()
}
