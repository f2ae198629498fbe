package handlers

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UserOrders(ctx context.Context, userID string) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// CatalogFacade provides product and category management.
type CatalogFacade interface {
	AddProduct(ctx context.Context, p model.Product) (*model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string) (*model.Category, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// CartFacade fills and reads carts.
type CartFacade interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error)
	Cart(ctx context.Context, userID string) (*model.Cart, error)
}

// UserFacade manages customer profiles.
type UserFacade interface {
	AddUser(ctx context.Context, name, email, password string) (*model.User, error)
	User(ctx context.Context, id string) (*model.User, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	OrderFacade
	CatalogFacade
	CartFacade
	UserFacade
	HealthFacade
}
