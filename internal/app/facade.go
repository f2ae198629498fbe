package app

import (
	"context"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/usecase"
)

// HealthChecker reports whether the primary store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes use cases to the HTTP layer and background workers.
type StoreFacade struct {
	users         *usecase.UserUseCase
	catalog       *usecase.CatalogUseCase
	carts         *usecase.CartUseCase
	orders        *usecase.OrderUseCase
	notifications *usecase.NotificationUseCase
	health        HealthChecker
}

func NewStoreFacade(
	users *usecase.UserUseCase,
	catalog *usecase.CatalogUseCase,
	carts *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	notifications *usecase.NotificationUseCase,
	health HealthChecker,
) *StoreFacade {
	return &StoreFacade{
		users:         users,
		catalog:       catalog,
		carts:         carts,
		orders:        orders,
		notifications: notifications,
		health:        health,
	}
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
	return f.orders.PlaceOrder(ctx, in)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StoreFacade) UserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID)
}

func (f *StoreFacade) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return f.catalog.AddProduct(ctx, p)
}

func (f *StoreFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, p)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id string) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *StoreFacade) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	return f.catalog.AddCategory(ctx, name)
}

func (f *StoreFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StoreFacade) AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	return f.carts.AddItem(ctx, userID, productID, quantity)
}

func (f *StoreFacade) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *StoreFacade) AddUser(ctx context.Context, name, email, password string) (*model.User, error) {
	return f.users.Create(ctx, name, email, password)
}

func (f *StoreFacade) User(ctx context.Context, id string) (*model.User, error) {
	return f.users.Get(ctx, id)
}

func (f *StoreFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *StoreFacade) ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.Batch(ctx, limit)
}

func (f *StoreFacade) CompleteNotification(ctx context.Context, n model.Notification, sendErr error) error {
	return f.notifications.Complete(ctx, n, sendErr)
}
