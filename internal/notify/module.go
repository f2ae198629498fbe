package notify

import (
	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/usecase"
)

// Module provides the outbox notifier as the workflow Notifier.
var Module = fx.Provide(
	fx.Annotate(NewOutboxNotifier, fx.As(new(usecase.Notifier))),
)
