package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/electrohub/internal/domain/errors"
	"github.com/polkiloo/electrohub/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByID  map[string]*model.User
	Err   error
	Calls int
	mu    sync.Mutex
}

// NewUserRepositoryStub constructs stub repository seeded with users.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{ByID: make(map[string]*model.User)}
	for _, u := range users {
		user := u
		s.ByID[user.ID] = &user
	}
	return s
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	for _, existing := range s.ByID {
		if existing.Email == user.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	s.ByID[user.ID] = &user
	stored := user
	return &stored, nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CartRepositoryStub keeps carts in memory and lets tests inject failures.
type CartRepositoryStub struct {
	Carts map[string]*model.Cart

	GetErr    error
	DeleteErr error
	AppendErr error

	GetCalls    int
	DeleteCalls int
	AppendCalls int
	mu          sync.Mutex
}

// NewCartRepositoryStub constructs stub repository with given carts.
func NewCartRepositoryStub(carts ...model.Cart) *CartRepositoryStub {
	s := &CartRepositoryStub{Carts: make(map[string]*model.Cart)}
	for _, c := range carts {
		cart := c
		s.Carts[cart.UserID] = &cart
	}
	return s
}

// GetByUser returns a copy of the stored cart.
func (s *CartRepositoryStub) GetByUser(ctx context.Context, userID string) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetCalls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	cart, ok := s.Carts[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	c := *cart
	c.Items = append([]model.CartItem(nil), cart.Items...)
	return &c, nil
}

// DeleteByUser removes the cart.
func (s *CartRepositoryStub) DeleteByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Carts, userID)
	return nil
}

// AppendItems creates the cart when needed and pushes items.
func (s *CartRepositoryStub) AppendItems(ctx context.Context, userID string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AppendCalls++
	if s.AppendErr != nil {
		return s.AppendErr
	}
	if s.Carts == nil {
		s.Carts = make(map[string]*model.Cart)
	}
	cart, ok := s.Carts[userID]
	if !ok {
		cart = &model.Cart{UserID: userID, CreatedAt: time.Now()}
		s.Carts[userID] = cart
	}
	cart.Items = append(cart.Items, items...)
	cart.UpdatedAt = time.Now()
	return nil
}

// OrderRepositoryStub stores orders in memory; Fn fields override behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, model.Order) (*model.Order, error)
	ListAllFn      func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	CancelErr      error
	// Carts receives restored items on Cancel when set.
	Carts *CartRepositoryStub

	Orders  map[string]*model.Order
	Created []model.Order
	mu      sync.Mutex
}

// NewOrderRepositoryStub constructs stub repository with given orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
	for _, o := range orders {
		order := o
		s.Orders[order.OrderID] = &order
	}
	return s
}

// Create records the order; duplicate ids return ErrAlreadyExists.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, ok := s.Orders[order.OrderID]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	s.Orders[order.OrderID] = &order
	s.Created = append(s.Created, order)
	stored := order
	return &stored, nil
}

// GetByOrderID returns stored order or not found.
func (s *OrderRepositoryStub) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[orderID]; ok {
		order := *o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns stored orders newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.list(func(model.Order) bool { return true }), nil
}

// ListByUser returns user orders newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (s *OrderRepositoryStub) list(keep func(model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if keep(*o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// UpdateStatus overwrites order status.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	order := *o
	return &order, nil
}

// Cancel removes the order and appends its items to Carts; a failed append
// leaves the order in place.
func (s *OrderRepositoryStub) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CancelErr != nil {
		return nil, s.CancelErr
	}
	o, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if s.Carts != nil {
		if err := s.Carts.AppendItems(ctx, o.UserID, o.CartItems()); err != nil {
			return nil, err
		}
	}
	delete(s.Orders, orderID)
	order := *o
	return &order, nil
}

// ProductRepositoryStub stores products in memory.
type ProductRepositoryStub struct {
	Products map[string]*model.Product
	Err      error
	mu       sync.Mutex
}

// NewProductRepositoryStub constructs stub repository with given products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[string]*model.Product)}
	for _, p := range products {
		product := p
		s.Products[product.ID] = &product
	}
	return s
}

// Create stores the product under a generated id when none is given.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	s.Products[product.ID] = &product
	stored := product
	return &stored, nil
}

// GetByID returns product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		product := *p
		return &product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIDs returns found products keyed by id.
func (s *ProductRepositoryStub) GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[string]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.Products[id]; ok {
			result[id] = *p
		}
	}
	return result, nil
}

// Update replaces stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Products[product.ID] = &product
	stored := product
	return &stored, nil
}

// Delete removes product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// CategoryRepositoryStub stores categories in memory.
type CategoryRepositoryStub struct {
	Items []model.Category
	Err   error
	mu    sync.Mutex
}

// Create appends the category unless its name is taken.
func (s *CategoryRepositoryStub) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.Items {
		if c.Name == category.Name {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	s.Items = append(s.Items, category)
	return &category, nil
}

// List returns stored categories.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Category(nil), s.Items...), nil
}

// GetByName returns category by exact name.
func (s *CategoryRepositoryStub) GetByName(ctx context.Context, name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.Items {
		if c.Name == name {
			category := c
			return &category, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// NotificationFailure records a MarkFailed invocation.
type NotificationFailure struct {
	ID            int64
	Status        model.NotificationStatus
	LastError     string
	NextAttemptAt time.Time
}

// NotificationRepositoryStub is an in-memory outbox.
type NotificationRepositoryStub struct {
	EnqueueErr error
	BatchFn    func(context.Context, int) ([]model.Notification, error)

	Queued   []model.Notification
	Sent     []int64
	Failures []NotificationFailure
	mu       sync.Mutex
}

// Enqueue appends a pending notification.
func (s *NotificationRepositoryStub) Enqueue(ctx context.Context, orderID string, msg model.Message) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnqueueErr != nil {
		return nil, s.EnqueueErr
	}
	n := model.Notification{
		ID:            int64(len(s.Queued) + 1),
		OrderID:       orderID,
		Message:       msg,
		Status:        model.NotificationStatusPending,
		NextAttemptAt: time.Now(),
	}
	s.Queued = append(s.Queued, n)
	return &n, nil
}

// SelectBatchForDelivery returns configured batch or drains the queue.
func (s *NotificationRepositoryStub) SelectBatchForDelivery(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.Queued) {
		limit = len(s.Queued)
	}
	batch := append([]model.Notification(nil), s.Queued[:limit]...)
	s.Queued = s.Queued[limit:]
	return batch, nil
}

// MarkSent records delivered notification.
func (s *NotificationRepositoryStub) MarkSent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, id)
	return nil
}

// MarkFailed records failed delivery.
func (s *NotificationRepositoryStub) MarkFailed(ctx context.Context, id int64, status model.NotificationStatus, lastError string, next time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failures = append(s.Failures, NotificationFailure{ID: id, Status: status, LastError: lastError, NextAttemptAt: next})
	return nil
}

// SentIDs returns a snapshot of delivered ids.
func (s *NotificationRepositoryStub) SentIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Sent...)
}
