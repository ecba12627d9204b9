package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/kitkatcodeskitty/lms-migrate/internal/config"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// Module provides the runner lock. Without REDIS_ADDR the lock is a no-op.
var Module = fx.Provide(newLocker)

type lockParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newLocker(p lockParams) repository.Locker {
	if p.Config.RedisAddress == "" {
		p.Logger.Debug("runner lock disabled, no redis address configured")
		return NopLock{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.Config.RedisAddress,
		Password: p.Config.RedisPassword,
	})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewLock(client, p.Config.LockKey, p.Config.LockTTL, p.Logger)
}
