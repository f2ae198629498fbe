package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products; products reference it by name.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Product is a catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// CategoryDetails is filled by lookups that join categories.
	CategoryDetails *Category
}
