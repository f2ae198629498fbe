package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

// GetByUser loads the cart with current catalog name and price per line.
// Lines whose product no longer exists are skipped.
func (r *cartRepository) GetByUser(ctx context.Context, userID string) (*model.Cart, error) {
	const cartQuery = `SELECT user_id::text, created_at, updated_at FROM carts WHERE user_id=$1`
	var cart model.Cart
	if err := r.storage.pool.QueryRow(ctx, cartQuery, userID).Scan(&cart.UserID, &cart.CreatedAt, &cart.UpdatedAt); err != nil {
		if isNoMatch(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT ci.product_id::text, p.product_name, ci.quantity, p.product_price
                        FROM cart_items ci
                        JOIN products p ON p.id = ci.product_id
                        WHERE ci.user_id=$1
                        ORDER BY ci.id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteByUser removes the cart and its lines; a missing cart is not an error.
func (r *cartRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.storage.pool.Exec(ctx, `DELETE FROM carts WHERE user_id=$1`, userID); err != nil {
		if isNoMatch(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *cartRepository) AppendItems(ctx context.Context, userID string, items []model.CartItem) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return appendCartItems(ctx, tx, userID, items)
	})
}

// appendCartItems upserts the cart row and pushes items inside tx.
func appendCartItems(ctx context.Context, tx pgx.Tx, userID string, items []model.CartItem) error {
	const upsertCart = `INSERT INTO carts (user_id) VALUES ($1)
                        ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()`
	if _, err := tx.Exec(ctx, upsertCart, userID); err != nil {
		return err
	}

	const insertItem = `INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)`
	for _, item := range items {
		if _, err := tx.Exec(ctx, insertItem, userID, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
