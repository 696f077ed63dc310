package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
)

// MemoryStore is an OrderRepository and OutboxRepository kept in process memory.
// All writes happen under one lock so a saved order is always complete.
type MemoryStore struct {
	mu           sync.RWMutex
	nextOrderID  int64
	nextEventID  int64
	orders       map[int64]*domain.Order
	transactions map[string]struct{}
	events       []*memoryEvent
	now          func() time.Time
}

type memoryEvent struct {
	OutboxEvent
	processed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders:       make(map[int64]*domain.Order),
		transactions: make(map[string]struct{}),
		now:          time.Now,
	}
}

func (s *MemoryStore) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.transactions[order.Payment.TransactionID]; dup {
		return nil, ErrDuplicateTransaction
	}

	saved := order.Clone()
	saved.ID = s.nextOrderID + 1

	payload, err := newOrderPlacedPayload(saved)
	if err != nil {
		return nil, fmt.Errorf("marshal order placed event: %w", err)
	}

	s.nextOrderID = saved.ID
	s.orders[saved.ID] = saved
	s.transactions[saved.Payment.TransactionID] = struct{}{}
	s.nextEventID++
	s.events = append(s.events, &memoryEvent{OutboxEvent: OutboxEvent{
		ID:          s.nextEventID,
		AggregateId: aggregateID(saved.ID),
		EventType:   EventTypeOrderPlaced,
		Payload:     payload,
		CreatedAt:   s.now(),
	}})

	return saved.Clone(), nil
}

func (s *MemoryStore) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (s *MemoryStore) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o.Clone())
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *MemoryStore) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*OutboxEvent
	for _, e := range s.events {
		if e.processed {
			continue
		}
		ev := e.OutboxEvent
		events = append(events, &ev)
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (s *MemoryStore) MarkEventAsProcessed(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.events {
		if e.ID == id {
			e.processed = true
			return nil
		}
	}
	return fmt.Errorf("outbox event %d not found", id)
}

func (s *MemoryStore) Close() error {
	return nil
}
