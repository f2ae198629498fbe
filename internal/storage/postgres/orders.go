package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `o.order_id, o.user_id::text, o.username, o.items, o.total_price, o.address, o.payment_method, o.payment_info, o.status, o.created_at, o.updated_at`

type orderDocuments struct {
	items       []byte
	address     []byte
	paymentInfo []byte
}

func encodeOrder(o model.Order) (orderDocuments, error) {
	var docs orderDocuments
	var err error
	if docs.items, err = json.Marshal(o.Items); err != nil {
		return docs, fmt.Errorf("encode items: %w", err)
	}
	if docs.address, err = json.Marshal(o.Address); err != nil {
		return docs, fmt.Errorf("encode address: %w", err)
	}
	if o.PaymentInfo != nil {
		if docs.paymentInfo, err = json.Marshal(o.PaymentInfo); err != nil {
			return docs, fmt.Errorf("encode payment info: %w", err)
		}
	}
	return docs, nil
}

func scanOrder(row pgx.Row, extra ...any) (model.Order, error) {
	var (
		o    model.Order
		docs orderDocuments
	)
	dest := []any{&o.OrderID, &o.UserID, &o.Username, &docs.items, &o.TotalPrice, &docs.address,
		&o.PaymentMethod, &docs.paymentInfo, &o.Status, &o.CreatedAt, &o.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return o, err
	}
	if err := json.Unmarshal(docs.items, &o.Items); err != nil {
		return o, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(docs.address, &o.Address); err != nil {
		return o, fmt.Errorf("decode address: %w", err)
	}
	if len(docs.paymentInfo) > 0 {
		if err := json.Unmarshal(docs.paymentInfo, &o.PaymentInfo); err != nil {
			return o, fmt.Errorf("decode payment info: %w", err)
		}
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	docs, err := encodeOrder(order)
	if err != nil {
		return nil, err
	}

	const query = `INSERT INTO orders (order_id, user_id, username, items, total_price, address, payment_method, payment_info, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query,
		order.OrderID, order.UserID, order.Username, docs.items, order.TotalPrice,
		docs.address, order.PaymentMethod, docs.paymentInfo, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.order_id=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `, u.user_name, u.user_email
                   FROM orders o
                   LEFT JOIN users u ON u.id = o.user_id
                   ORDER BY o.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		var name, email *string
		o, err := scanOrder(rows, &name, &email)
		if err != nil {
			return nil, err
		}
		if name != nil {
			o.Customer = &model.User{ID: o.UserID, Name: *name}
			if email != nil {
				o.Customer.Email = *email
			}
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id=$1 ORDER BY o.created_at DESC`
	result := make([]model.Order, 0)
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		if isNoMatch(err) {
			return result, nil
		}
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		if isNoMatch(err) {
			return result, nil
		}
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders o SET status=$2, updated_at=NOW() WHERE o.order_id=$1 RETURNING ` + orderColumns
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, status))
	if err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Cancel removes the order and restores its items to the cart in one transaction.
func (r *orderRepository) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `DELETE FROM orders o WHERE o.order_id=$1 RETURNING ` + orderColumns
		var err error
		if order, err = scanOrder(tx.QueryRow(ctx, query, orderID)); err != nil {
			if isNoMatch(err) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return appendCartItems(ctx, tx, order.UserID, order.CartItems())
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
