package repository

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// ProductRepository describes persistence operations with products.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)
	Update(ctx context.Context, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository describes persistence operations with categories.
type CategoryRepository interface {
	Create(ctx context.Context, category model.Category) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
}
