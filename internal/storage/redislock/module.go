package redislock

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/config"
	"github.com/polkiloo/electrohub/internal/usecase"
)

// Module provides the placement locker; without REDIS_ADDRESS placements are not serialized.
var Module = fx.Provide(newUserLocker)

var newClient = func(cfg *config.Config) client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
}

type lockerParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

func newUserLocker(p lockerParams) usecase.UserLocker {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("redis address not configured, order placement locks disabled")
		return usecase.NopLocker{}
	}

	locker := New(newClient(p.Config), p.Config.OrderLockTTL, p.Logger)
	p.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return locker.Close()
		},
	})
	return locker
}
