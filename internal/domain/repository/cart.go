package repository

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// CartRepository describes persistence operations with carts.
type CartRepository interface {
	GetByUser(ctx context.Context, userID string) (*model.Cart, error)
	DeleteByUser(ctx context.Context, userID string) error
	// AppendItems creates the cart when missing and pushes items as new lines.
	AppendItems(ctx context.Context, userID string, items []model.CartItem) error
}
