package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/domain/repository"
)

const maxOrderIDAttempts = 3

// OrderParams lists OrderUseCase collaborators. Locker and Metrics are optional.
type OrderParams struct {
	fx.In

	Users    repository.UserRepository
	Carts    repository.CartRepository
	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Notifier Notifier
	Composer *MessageComposer
	Logger   *slog.Logger
	Locker   UserLocker   `optional:"true"`
	Metrics  OrderMetrics `optional:"true"`
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	users    repository.UserRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	notifier Notifier
	composer *MessageComposer
	logger   *slog.Logger
	locker   UserLocker
	metrics  OrderMetrics
	newID    func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(p OrderParams) *OrderUseCase {
	uc := &OrderUseCase{
		users:    p.Users,
		carts:    p.Carts,
		orders:   p.Orders,
		products: p.Products,
		notifier: p.Notifier,
		composer: p.Composer,
		logger:   p.Logger,
		locker:   p.Locker,
		metrics:  p.Metrics,
		newID:    NewOrderID,
	}
	if uc.logger == nil {
		uc.logger = slog.Default()
	}
	if uc.locker == nil {
		uc.locker = NopLocker{}
	}
	if uc.metrics == nil {
		uc.metrics = nopMetrics{}
	}
	return uc
}

// PlaceOrder converts the user's cart into a persisted order, clears the
// cart and queues a confirmation email.
//
// When the order is stored but the cart cannot be cleared, the result is
// returned together with an error wrapping ErrCartNotCleared.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, in model.PlaceOrderInput) (*model.PlaceOrderResult, error) {
	user, err := u.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.metrics.PlacementFailed("user_not_found")
			return nil, domainErrors.ErrUserNotFound
		}
		u.metrics.PlacementFailed("persistence")
		return nil, &domainErrors.PersistenceError{Op: "load user", Err: err}
	}

	unlock, err := u.locker.Lock(ctx, user.ID)
	switch {
	case errors.Is(err, domainErrors.ErrOrderInProgress):
		u.metrics.PlacementFailed("in_progress")
		return nil, err
	case err != nil:
		u.logger.Warn("order lock unavailable, placing without it",
			slog.String("user_id", user.ID), slog.String("error", err.Error()))
	default:
		defer unlock()
	}

	cart, err := u.carts.GetByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		u.metrics.PlacementFailed("persistence")
		return nil, &domainErrors.PersistenceError{Op: "load cart", Err: err}
	}
	if cart.IsEmpty() {
		u.metrics.PlacementFailed("empty_cart")
		return nil, domainErrors.ErrEmptyCart
	}

	if err := validatePayment(in.PaymentMethod, in.PaymentInfo); err != nil {
		u.metrics.PlacementFailed("payment")
		return nil, err
	}

	draft := model.Order{
		UserID:        user.ID,
		Username:      user.Name,
		Items:         snapshotItems(cart.Items),
		TotalPrice:    cart.TotalPrice(),
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		Status:        model.OrderStatusPlaced,
	}
	if in.PaymentMethod == model.PaymentMethodOnline {
		draft.PaymentInfo = &model.PaymentInfo{
			PaymentID: strings.TrimSpace(in.PaymentInfo.PaymentID),
			Status:    in.PaymentInfo.Status,
		}
	}

	// Writes below must not be abandoned halfway by a client disconnect.
	ctx = context.WithoutCancel(ctx)

	order, err := u.create(ctx, draft)
	if err != nil {
		u.metrics.PlacementFailed("persistence")
		return nil, &domainErrors.PersistenceError{Op: "create order", Err: err}
	}

	result := &model.PlaceOrderResult{Order: order}

	if err := u.carts.DeleteByUser(ctx, user.ID); err != nil {
		u.logger.Error("order placed but cart not cleared",
			slog.String("order_id", order.OrderID),
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		u.metrics.PlacementFailed("cart_not_cleared")
		return result, fmt.Errorf("%w: %w", domainErrors.ErrCartNotCleared,
			&domainErrors.PersistenceError{Op: "clear cart", Err: err})
	}

	u.metrics.OrderPlaced(order.PaymentMethod)
	u.logger.Info("order placed",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", user.ID),
		slog.String("total", order.TotalPrice.String()))

	if err := u.notify(ctx, order, user); err != nil {
		result.NotificationErr = err
		u.metrics.Notification("enqueue_failed")
		u.logger.Warn("order confirmation not queued",
			slog.String("order_id", order.OrderID),
			slog.String("error", err.Error()))
	}

	return result, nil
}

func (u *OrderUseCase) create(ctx context.Context, draft model.Order) (*model.Order, error) {
	var err error
	for range maxOrderIDAttempts {
		draft.OrderID = u.newID()
		var order *model.Order
		order, err = u.orders.Create(ctx, draft)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, err
		}
		u.logger.Warn("order id collision", slog.String("order_id", draft.OrderID))
	}
	return nil, err
}

func (u *OrderUseCase) notify(ctx context.Context, order *model.Order, user *model.User) error {
	if u.notifier == nil || u.composer == nil {
		return nil
	}
	msg, err := u.composer.Confirmation(order, user)
	if err != nil {
		return &domainErrors.NotificationError{OrderID: order.OrderID, Err: err}
	}
	if err := u.notifier.Send(ctx, order.OrderID, msg); err != nil {
		return &domainErrors.NotificationError{OrderID: order.OrderID, Err: err}
	}
	return nil
}

func snapshotItems(items []model.CartItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Total:       item.LineTotal(),
		})
	}
	return out
}

// ListAll returns every order with customer and product data resolved.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	if len(ids) == 0 {
		return orders, nil
	}

	products, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		for j := range orders[i].Items {
			if p, ok := products[orders[i].Items[j].ProductID]; ok {
				product := p
				orders[i].Items[j].Product = &product
			}
		}
	}
	return orders, nil
}

// ListByUser returns user orders newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// UpdateStatus overwrites the order status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status string) (*model.Order, error) {
	normalized, err := NormalizeStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.UpdateStatus(ctx, orderID, normalized)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// Cancel deletes the order and pushes its items back into the user's cart.
// Catalog stock is not adjusted.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.Cancel(context.WithoutCancel(ctx), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, &domainErrors.PersistenceError{Op: "cancel order", Err: err}
	}

	u.logger.Info("order cancelled",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", order.UserID))
	return order, nil
}
