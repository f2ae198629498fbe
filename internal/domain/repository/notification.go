package repository

import (
	"context"
	"time"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// NotificationRepository describes the email outbox.
type NotificationRepository interface {
	Enqueue(ctx context.Context, orderID string, msg model.Message) (*model.Notification, error)
	// SelectBatchForDelivery claims due entries and marks them PROCESSING.
	SelectBatchForDelivery(ctx context.Context, limit int) ([]model.Notification, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, status model.NotificationStatus, lastError string, nextAttemptAt time.Time) error
}
