package repository

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	// ListAll returns every order newest first with Customer populated.
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	// Cancel deletes the order and appends its items to the owner's cart
	// atomically. A missing order yields ErrNotFound and changes nothing.
	Cancel(ctx context.Context, orderID string) (*model.Order, error)
}
