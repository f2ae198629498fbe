package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

// CatalogUseCase manages products and categories.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories}
}

func normalizeProduct(p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Brand = strings.TrimSpace(p.Brand)
	if !p.Price.IsPositive() {
		return p, domainErrors.ErrInvalidPrice
	}
	return p, nil
}

// AddProduct stores a catalog entry.
func (u *CatalogUseCase) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p, err := normalizeProduct(p)
	if err != nil {
		return nil, err
	}
	return u.products.Create(ctx, p)
}

// Product returns a product with its category details when the category exists.
func (u *CatalogUseCase) Product(ctx context.Context, id string) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}

	category, err := u.categories.GetByName(ctx, product.Category)
	switch {
	case err == nil:
		product.CategoryDetails = category
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}
	return product, nil
}

// UpdateProduct overwrites editable product fields.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p, err := normalizeProduct(p)
	if err != nil {
		return nil, err
	}
	updated, err := u.products.Update(ctx, p)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteProduct removes a product. Existing order snapshots are unaffected.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := u.products.Delete(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrProductNotFound
		}
		return err
	}
	return nil
}

// AddCategory creates a category with a unique name.
func (u *CatalogUseCase) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidCategory
	}
	return u.categories.Create(ctx, model.Category{Name: name})
}

// Categories lists all categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}
