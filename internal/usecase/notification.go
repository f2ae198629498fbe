package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

const (
	baseRetryDelay = time.Second
	maxRetryDelay  = 5 * time.Minute
)

// permanent is implemented by delivery errors that must not be retried.
type permanent interface {
	Permanent() bool
}

// NotificationUseCase drives the email outbox.
type NotificationUseCase struct {
	repo        repository.NotificationRepository
	maxAttempts int
	metrics     OrderMetrics
	now         func() time.Time
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(repo repository.NotificationRepository, maxAttempts int, metrics OrderMetrics) *NotificationUseCase {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &NotificationUseCase{repo: repo, maxAttempts: maxAttempts, metrics: metrics, now: time.Now}
}

// Batch claims due notifications.
func (u *NotificationUseCase) Batch(ctx context.Context, limit int) ([]model.Notification, error) {
	return u.repo.SelectBatchForDelivery(ctx, limit)
}

// Complete records the outcome of a delivery attempt.
func (u *NotificationUseCase) Complete(ctx context.Context, n model.Notification, sendErr error) error {
	if sendErr == nil {
		if err := u.repo.MarkSent(ctx, n.ID); err != nil {
			return err
		}
		u.metrics.Notification("sent")
		return nil
	}

	attempts := n.Attempts + 1
	var p permanent
	if (errors.As(sendErr, &p) && p.Permanent()) || attempts >= u.maxAttempts {
		if err := u.repo.MarkFailed(ctx, n.ID, model.NotificationStatusDead, sendErr.Error(), u.now()); err != nil {
			return err
		}
		u.metrics.Notification("dead")
		return nil
	}

	next := u.now().Add(RetryDelay(n.Attempts))
	if err := u.repo.MarkFailed(ctx, n.ID, model.NotificationStatusFailed, sendErr.Error(), next); err != nil {
		return err
	}
	u.metrics.Notification("failed")
	return nil
}

// RetryDelay doubles from one second per previous attempt, capped at five minutes.
func RetryDelay(attempts int) time.Duration {
	delay := baseRetryDelay
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}
