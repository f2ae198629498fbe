package usecase

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// Notifier hands an order confirmation to the delivery pipeline.
type Notifier interface {
	Send(ctx context.Context, orderID string, msg model.Message) error
}

// UserLocker serializes order placement per user. Lock returns
// domain ErrOrderInProgress when another placement holds the key.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

// OrderMetrics receives workflow outcomes.
type OrderMetrics interface {
	OrderPlaced(method model.PaymentMethod)
	PlacementFailed(reason string)
	Notification(result string)
}

// NopLocker never blocks placements.
type NopLocker struct{}

// Lock always succeeds.
func (NopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

type nopMetrics struct{}

func (nopMetrics) OrderPlaced(model.PaymentMethod) {}
func (nopMetrics) PlacementFailed(string)          {}
func (nopMetrics) Notification(string)             {}
