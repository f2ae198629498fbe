// Package notify queues order confirmations in the notifications outbox.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

// OutboxNotifier stores messages for the dispatcher instead of sending them inline.
type OutboxNotifier struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
}

// NewOutboxNotifier constructs OutboxNotifier.
func NewOutboxNotifier(repo repository.NotificationRepository, logger *slog.Logger) *OutboxNotifier {
	return &OutboxNotifier{repo: repo, logger: logger}
}

// Send enqueues the message as a PENDING notification.
func (n *OutboxNotifier) Send(ctx context.Context, orderID string, msg model.Message) error {
	if msg.To == "" {
		return fmt.Errorf("enqueue notification for %s: empty recipient", orderID)
	}
	queued, err := n.repo.Enqueue(ctx, orderID, msg)
	if err != nil {
		return fmt.Errorf("enqueue notification for %s: %w", orderID, err)
	}
	n.logger.Debug("notification queued",
		slog.Int64("notification_id", queued.ID),
		slog.String("order_id", orderID))
	return nil
}
