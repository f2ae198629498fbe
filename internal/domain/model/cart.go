package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem references a product; name and price are read from the catalog
// at the moment the cart is loaded.
type CartItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// LineTotal returns quantity × price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the single active cart of a user.
type Cart struct {
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// TotalPrice sums line totals.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
