package test

import (
	"context"
	"sync"

	"github.com/polkiloo/electrohub/internal/domain/model"
)

// SentMessage captures a Notifier.Send invocation.
type SentMessage struct {
	OrderID string
	Message model.Message
}

// NotifierStub records messages and returns configured error.
type NotifierStub struct {
	Err  error
	Sent []SentMessage
	mu   sync.Mutex
}

// Send records the message.
func (s *NotifierStub) Send(ctx context.Context, orderID string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentMessage{OrderID: orderID, Message: msg})
	return nil
}

// LockerStub returns configured error and counts releases.
type LockerStub struct {
	Err      error
	Locked   []string
	Released int
	mu       sync.Mutex
}

// Lock records the key.
func (s *LockerStub) Lock(ctx context.Context, userID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Locked = append(s.Locked, userID)
	if s.Err != nil {
		return nil, s.Err
	}
	return func() {
		s.mu.Lock()
		s.Released++
		s.mu.Unlock()
	}, nil
}

// MetricsStub counts workflow outcomes.
type MetricsStub struct {
	Placed        map[model.PaymentMethod]int
	Failures      map[string]int
	Notifications map[string]int
	mu            sync.Mutex
}

// NewMetricsStub constructs MetricsStub with initialized maps.
func NewMetricsStub() *MetricsStub {
	return &MetricsStub{
		Placed:        make(map[model.PaymentMethod]int),
		Failures:      make(map[string]int),
		Notifications: make(map[string]int),
	}
}

func (s *MetricsStub) OrderPlaced(method model.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Placed[method]++
}

func (s *MetricsStub) PlacementFailed(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failures[reason]++
}

func (s *MetricsStub) Notification(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications[result]++
}

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn func(string) (string, error)
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// SenderStub records delivered messages and returns configured error.
type SenderStub struct {
	SendFn func(context.Context, model.Message) error
	Sent   []model.Message
	mu     sync.Mutex
}

// Send records the message unless SendFn fails it.
func (s *SenderStub) Send(ctx context.Context, msg model.Message) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, msg); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a snapshot of delivered messages.
func (s *SenderStub) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.Sent...)
}

// HealthCheckerStub reports configured error.
type HealthCheckerStub struct {
	Err error
}

func (h HealthCheckerStub) HealthCheck(context.Context) error {
	return h.Err
}
