package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/electrohub/internal/usecase"
)

// Module provides the workflow metrics recorder.
var Module = fx.Provide(
	fx.Annotate(NewRecorder, fx.As(new(usecase.OrderMetrics))),
)
