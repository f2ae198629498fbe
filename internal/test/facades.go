package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, model.PlaceOrderInput) (*model.PlaceOrderResult, error)
	AllFn    func(context.Context) ([]model.Order, error)
	ByUserFn func(context.Context, string) ([]model.Order, error)
	UpdateFn func(context.Context, string, string) (*model.Order, error)
	CancelFn func(context.Context, string) (*model.Order, error)
}

// PlaceOrder delegates to provided function or places an offline order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return &model.PlaceOrderResult{Order: &model.Order{
		OrderID:       "ORD-0000test",
		UserID:        in.UserID,
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		PaymentInfo:   in.PaymentInfo,
		Status:        model.OrderStatusPlaced,
		TotalPrice:    decimal.NewFromInt(200),
	}}, nil
}

// AllOrders returns predefined orders.
func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx)
	}
	return []model.Order{{OrderID: "ORD-1", Status: model.OrderStatusPlaced}}, nil
}

// UserOrders returns predefined orders for given user.
func (s OrderFacadeStub) UserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.ByUserFn != nil {
		return s.ByUserFn(ctx, userID)
	}
	return []model.Order{{OrderID: "ORD-1", UserID: userID}}, nil
}

// UpdateOrderStatus echoes the requested status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return &model.Order{OrderID: orderID, Status: model.OrderStatus(status)}, nil
}

// CancelOrder returns the cancelled order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return &model.Order{OrderID: orderID}, nil
}

// CatalogFacadeStub simulates catalog operations.
type CatalogFacadeStub struct {
	AddProductFn    func(context.Context, model.Product) (*model.Product, error)
	ProductFn       func(context.Context, string) (*model.Product, error)
	UpdateProductFn func(context.Context, model.Product) (*model.Product, error)
	DeleteProductFn func(context.Context, string) error
	AddCategoryFn   func(context.Context, string) (*model.Category, error)
	CategoriesFn    func(context.Context) ([]model.Category, error)
}

func (s CatalogFacadeStub) AddProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.AddProductFn != nil {
		return s.AddProductFn(ctx, p)
	}
	p.ID = "p1"
	return &p, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Headphones", Price: decimal.NewFromInt(100)}, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, p)
	}
	return &p, nil
}

func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id string) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

func (s CatalogFacadeStub) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	if s.AddCategoryFn != nil {
		return s.AddCategoryFn(ctx, name)
	}
	return &model.Category{ID: "c1", Name: name}, nil
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: "c1", Name: "Audio"}}, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	AddFn func(context.Context, string, string, int) (*model.Cart, error)
	GetFn func(context.Context, string) (*model.Cart, error)
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity)
	}
	return &model.Cart{UserID: userID, Items: []model.CartItem{
		{ProductID: productID, ProductName: "Headphones", Quantity: quantity, Price: decimal.NewFromInt(100)},
	}}, nil
}

func (s CartFacadeStub) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	return &model.Cart{UserID: userID}, nil
}

// UserFacadeStub simulates profile operations.
type UserFacadeStub struct {
	AddFn func(context.Context, string, string, string) (*model.User, error)
	GetFn func(context.Context, string) (*model.User, error)
}

func (s UserFacadeStub) AddUser(ctx context.Context, name, email, password string) (*model.User, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, name, email, password)
	}
	return &model.User{ID: "u1", Name: name, Email: email, PasswordHash: "hash:" + password}, nil
}

func (s UserFacadeStub) User(ctx context.Context, id string) (*model.User, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.User{ID: id, Name: "Asha", Email: "asha@example.com", PasswordHash: "secret-hash"}, nil
}

// HealthFacadeStub reports configured error.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// StoreFacadeStub aggregates all HTTP facade stubs.
type StoreFacadeStub struct {
	OrderFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	UserFacadeStub
	HealthFacadeStub
}

// CompletionCall stores information about CompleteNotification invocations.
type CompletionCall struct {
	ID      int64
	SendErr error
}

// OutboxFacadeStub mimics dispatcher interactions with the store facade.
type OutboxFacadeStub struct {
	Batches    [][]model.Notification
	ClaimFn    func(context.Context, int) ([]model.Notification, error)
	CompleteFn func(context.Context, model.Notification, error) error
	Completed  []CompletionCall
	mu         sync.Mutex
	claimCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *OutboxFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *OutboxFacadeStub) Unlock() { s.mu.Unlock() }

// ClaimNotifications returns batches from configured queue.
func (s *OutboxFacadeStub) ClaimNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.claimCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CompleteNotification records outcomes.
func (s *OutboxFacadeStub) CompleteNotification(ctx context.Context, n model.Notification, sendErr error) error {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, n, sendErr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Completed = append(s.Completed, CompletionCall{ID: n.ID, SendErr: sendErr})
	return nil
}

// Completions returns a snapshot of recorded outcomes.
func (s *OutboxFacadeStub) Completions() []CompletionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CompletionCall(nil), s.Completed...)
}
