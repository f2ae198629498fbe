package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidUser           = errors.New("invalid user data")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrMissingPaymentDetails = errors.New("missing payment details for online payment")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderInProgress       = errors.New("another order placement is in progress for this user")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrCartNotCleared        = errors.New("order placed but cart was not cleared")
	ErrProductNotFound       = errors.New("product not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrInvalidCategory       = errors.New("category name is required")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidPrice          = errors.New("price must be positive")
)

// PersistenceError reports a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NotificationError reports that an order confirmation could not be handed
// to the notifier. It never fails the order itself.
type NotificationError struct {
	OrderID string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify order %s: %v", e.OrderID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
