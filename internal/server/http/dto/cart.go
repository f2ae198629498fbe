package dto

import "github.com/shopspring/decimal"

// AddToCartRequest pushes a product into the user's cart.
type AddToCartRequest struct {
	UserID    string `json:"userId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse is one cart line priced from the catalog.
type CartItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// CartResponse describes the user's cart.
type CartResponse struct {
	UserID     string             `json:"userId"`
	Items      []CartItemResponse `json:"products"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
}
