package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest is used for both creating and editing products.
type ProductRequest struct {
	Name        string           `json:"product_name" binding:"required"`
	Description string           `json:"product_description"`
	Price       *decimal.Decimal `json:"product_price" binding:"required"`
	Category    string           `json:"product_category" binding:"required"`
	Brand       string           `json:"product_brand"`
	Image       string           `json:"product_image" binding:"omitempty,url"`
}

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name string `json:"category_name" binding:"required"`
}

// CategoryResponse describes a category.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"category_name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductResponse describes a catalog entry.
type ProductResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"product_name"`
	Description     string            `json:"product_description"`
	Price           decimal.Decimal   `json:"product_price"`
	Category        string            `json:"product_category"`
	Brand           string            `json:"product_brand"`
	Image           string            `json:"product_image"`
	CategoryDetails *CategoryResponse `json:"category_details"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
