package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "Placed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentMethod enumerates accepted ways to pay for an order.
type PaymentMethod string

const (
	PaymentMethodOnline         PaymentMethod = "Online"
	PaymentMethodOffline        PaymentMethod = "Offline"
	PaymentMethodCashOnDelivery PaymentMethod = "Cash on Delivery"
)

// Valid reports whether the payment method is one of the accepted values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodOnline, PaymentMethodOffline, PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}

// Address is a structured shipping address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// PaymentInfo carries gateway metadata for online payments.
type PaymentInfo struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// OrderItem is an immutable line snapshot taken when the order is created.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`

	// Product holds current catalog data, resolved only for admin listings.
	Product *Product `json:"-"`
}

// Order is a placed purchase. Username and items are snapshots.
type Order struct {
	OrderID       string
	UserID        string
	Username      string
	Items         []OrderItem
	TotalPrice    decimal.Decimal
	Address       Address
	PaymentMethod PaymentMethod
	PaymentInfo   *PaymentInfo
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Customer holds the owner's current profile, resolved only for admin listings.
	Customer *User
}

// ItemsTotal sums line totals of the snapshot.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total)
	}
	return total
}

// CartItems converts the snapshot back into cart lines.
func (o *Order) CartItems() []CartItem {
	items := make([]CartItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, CartItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return items
}
