package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/electrohub/internal/adapter/mailer"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

// OutboxFacade exposes the subset of application functionality required by the dispatcher.
type OutboxFacade interface {
	ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	CompleteNotification(ctx context.Context, n model.Notification, sendErr error) error
}

// NotificationDispatcher polls the outbox and delivers messages concurrently.
type NotificationDispatcher struct {
	facade       OutboxFacade
	sender       mailer.Sender
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs dispatcher worker pool.
func NewNotificationDispatcher(facade OutboxFacade, sender mailer.Sender, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &NotificationDispatcher{
		facade:       facade,
		sender:       sender,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background delivery.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.jobs = make(chan model.Notification, d.batchSize*d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, d.jobs)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx, d.jobs)
}

// Stop waits for all workers to finish. Claimed but unsent notifications
// return to the queue once their claim goes stale.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) dispatch(ctx context.Context, jobs chan<- model.Notification) {
	defer d.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (d *NotificationDispatcher) fetchAndDispatch(ctx context.Context, jobs chan<- model.Notification) {
	batch, err := d.facade.ClaimNotifications(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("claim notifications failed", slog.String("error", err.Error()))
		return
	}
	for _, n := range batch {
		select {
		case <-ctx.Done():
			return
		case jobs <- n:
		}
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context, jobs <-chan model.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-jobs:
			if !ok {
				return
			}
			d.deliver(ctx, n)
		}
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n model.Notification) {
	sendErr := d.sender.Send(ctx, n.Message)
	if sendErr != nil {
		d.logger.Warn("notification delivery failed",
			slog.Int64("notification_id", n.ID),
			slog.String("order_id", n.OrderID),
			slog.Int("attempt", n.Attempts+1),
			slog.String("error", sendErr.Error()))
	}

	// the outcome is recorded even when shutdown interrupted the send
	if err := d.facade.CompleteNotification(context.WithoutCancel(ctx), n, sendErr); err != nil {
		d.logger.Error("record notification outcome failed",
			slog.Int64("notification_id", n.ID),
			slog.String("error", err.Error()))
	}
}
