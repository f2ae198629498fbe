package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

// CartUseCase fills carts ahead of checkout.
type CartUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(users repository.UserRepository, products repository.ProductRepository, carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{users: users, products: products, carts: carts}
}

// AddItem pushes a product line into the user's cart and returns the cart.
func (u *CartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, err
	}
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductNotFound
		}
		return nil, err
	}

	item := model.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
	}
	if err := u.carts.AppendItems(ctx, userID, []model.CartItem{item}); err != nil {
		return nil, err
	}
	return u.carts.GetByUser(ctx, userID)
}

// Get returns the user's cart or ErrNotFound.
func (u *CartUseCase) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return u.carts.GetByUser(ctx, userID)
}
