package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a single-holder lock stored in Redis with an expiry.
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *slog.Logger
}

// NewLock builds a lock over key. ttl bounds how long a crashed runner can
// keep others out.
func NewLock(client *redis.Client, key string, ttl time.Duration, logger *slog.Logger) *Lock {
	return &Lock{client: client, key: key, ttl: ttl, logger: logger}
}

// Acquire takes the lock or returns ErrLocked when it is held.
func (l *Lock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	const op = "redis.Lock.Acquire"
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", op, l.key, domainErrors.ErrLocked)
	}
	l.logger.Debug("runner lock acquired", slog.String("key", l.key), slog.Duration("ttl", l.ttl))

	release := func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Int64()
		if err != nil {
			return fmt.Errorf("redis.Lock.Release: %w", err)
		}
		if n == 0 {
			l.logger.Warn("runner lock expired before release", slog.String("key", l.key))
		}
		return nil
	}
	return release, nil
}

// NopLock never blocks. Used when no Redis address is configured.
type NopLock struct{}

// Acquire always succeeds.
func (NopLock) Acquire(context.Context) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
