package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressPayload describes a shipping address.
type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// PaymentInfoPayload carries gateway metadata for online payments.
type PaymentInfoPayload struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	UserID        string              `json:"userId" binding:"required"`
	Address       *AddressPayload     `json:"address" binding:"required"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
	PaymentInfo   *PaymentInfoPayload `json:"paymentInfo"`
}

// UpdateStatusRequest carries the new order status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one line of an order snapshot.
type OrderItemResponse struct {
	ProductID   string           `json:"productId"`
	ProductName string           `json:"productName"`
	Quantity    int              `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	Total       decimal.Decimal  `json:"total"`
	Product     *ProductResponse `json:"product,omitempty"`
}

// CustomerResponse is the current profile of an order's owner.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"user_name"`
	Email string `json:"user_email"`
}

// OrderResponse describes a persisted order.
type OrderResponse struct {
	OrderID       string              `json:"orderId"`
	UserID        string              `json:"userId"`
	Username      string              `json:"username"`
	Customer      *CustomerResponse   `json:"customer,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	TotalPrice    decimal.Decimal     `json:"totalPrice"`
	Address       AddressPayload      `json:"address"`
	PaymentMethod string              `json:"paymentMethod"`
	PaymentInfo   *PaymentInfoPayload `json:"paymentInfo,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
