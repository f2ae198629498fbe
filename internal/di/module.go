package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/adapter/mailer"
	"github.com/polkiloo/electrohub/internal/app"
	"github.com/polkiloo/electrohub/internal/config"
	"github.com/polkiloo/electrohub/internal/logger"
	"github.com/polkiloo/electrohub/internal/metrics"
	"github.com/polkiloo/electrohub/internal/notify"
	"github.com/polkiloo/electrohub/internal/pkg/password"
	"github.com/polkiloo/electrohub/internal/server/http/handlers"
	"github.com/polkiloo/electrohub/internal/server/http/router"
	"github.com/polkiloo/electrohub/internal/storage/postgres"
	"github.com/polkiloo/electrohub/internal/storage/redislock"
	"github.com/polkiloo/electrohub/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		password.Module,
		postgres.Module,
		redislock.Module,
		mailer.Module,
		metrics.Module,
		usecase.Module,
		notify.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
