package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/config"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewUserUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewOrderUseCase,
	newMessageComposer,
	newNotificationUseCase,
)

func newMessageComposer(cfg *config.Config) *MessageComposer {
	return NewMessageComposer(cfg.ShopName)
}

type notificationParams struct {
	fx.In

	Repo    repository.NotificationRepository
	Config  *config.Config
	Metrics OrderMetrics `optional:"true"`
}

func newNotificationUseCase(p notificationParams) *NotificationUseCase {
	return NewNotificationUseCase(p.Repo, p.Config.NotifyMaxAttempts, p.Metrics)
}
