package usecase

import "github.com/google/uuid"

const orderIDPrefix = "ORD-"

// NewOrderID returns the prefix followed by the first group of a random UUID.
func NewOrderID() string {
	return orderIDPrefix + uuid.NewString()[:8]
}
