package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// staleProcessingAfter returns PROCESSING rows to the queue when a dispatcher
// died before recording the outcome.
const staleProcessingAfter = 5 * time.Minute

type notificationRepository struct {
	storage *Storage
}

const notificationColumns = `id, order_id, recipient, subject, text_body, html_body, status, attempts, last_error, next_attempt_at, created_at, updated_at`

func scanNotification(row pgx.Row) (model.Notification, error) {
	var n model.Notification
	err := row.Scan(&n.ID, &n.OrderID, &n.Message.To, &n.Message.Subject, &n.Message.Text, &n.Message.HTML,
		&n.Status, &n.Attempts, &n.LastError, &n.NextAttemptAt, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *notificationRepository) Enqueue(ctx context.Context, orderID string, msg model.Message) (*model.Notification, error) {
	const query = `INSERT INTO notifications (order_id, recipient, subject, text_body, html_body, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING ` + notificationColumns
	n, err := scanNotification(r.storage.pool.QueryRow(ctx, query,
		orderID, msg.To, msg.Subject, msg.Text, msg.HTML, model.NotificationStatusPending))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) SelectBatchForDelivery(ctx context.Context, limit int) ([]model.Notification, error) {
	const selectQuery = `SELECT ` + notificationColumns + `
                         FROM notifications
                         WHERE (status IN ('PENDING', 'FAILED') AND next_attempt_at <= NOW())
                            OR (status = 'PROCESSING' AND updated_at < $2)
                         ORDER BY next_attempt_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var batch []model.Notification
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit, time.Now().Add(-staleProcessingAfter))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			n, err := scanNotification(rows)
			if err != nil {
				return err
			}
			batch = append(batch, n)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for i := range batch {
			if _, err := tx.Exec(ctx, `UPDATE notifications SET status='PROCESSING', updated_at=NOW() WHERE id=$1`, batch[i].ID); err != nil {
				return err
			}
			batch[i].Status = model.NotificationStatusProcessing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET status=$2, attempts=attempts+1, last_error='', updated_at=NOW() WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id, model.NotificationStatusSent)
	return err
}

func (r *notificationRepository) MarkFailed(ctx context.Context, id int64, status model.NotificationStatus, lastError string, nextAttemptAt time.Time) error {
	const query = `UPDATE notifications
                   SET status=$2, attempts=attempts+1, last_error=$3, next_attempt_at=$4, updated_at=NOW()
                   WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id, status, lastError, nextAttemptAt)
	return err
}
