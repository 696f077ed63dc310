package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sejalm1919/E-Commerce/internal/cache"
	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/sejalm1919/E-Commerce/internal/repository"
	"github.com/shopspring/decimal"
)

// mockLookup implements ProductLookup over a fixed product table.
type mockLookup struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	err      error
	calls    []int64
}

func newMockLookup(products ...domain.Product) *mockLookup {
	m := &mockLookup{products: make(map[int64]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockLookup) GetProduct(_ context.Context, id int64) (domain.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, id)
	if m.err != nil {
		return domain.Product{}, false, m.err
	}
	p, ok := m.products[id]
	return p, ok, nil
}

func (m *mockLookup) setPrice(id int64, price string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	p.Price = decimal.RequireFromString(price)
	m.products[id] = p
}

// mockStore implements repository.OrderRepository.
type mockStore struct {
	mu      sync.Mutex
	nextID  int64
	saved   []*domain.Order
	saveErr error
	getErr  error
	// blockSave makes SaveOrder wait for its context to expire.
	blockSave bool
	getCalls  int
}

func (m *mockStore) SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if m.blockSave {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.nextID++
	saved := order.Clone()
	saved.ID = m.nextID
	m.saved = append(m.saved, saved)
	return saved.Clone(), nil
}

func (m *mockStore) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, o := range m.saved {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockStore) ListOrders(_ context.Context, limit int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for i := len(m.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.saved[i].Clone())
	}
	return out, nil
}

func (m *mockStore) Close() error {
	return nil
}

func (m *mockStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

// mockCache implements cache.OrderCache.
type mockCache struct {
	mu     sync.Mutex
	orders map[int64]*domain.Order
	getErr error
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{orders: make(map[int64]*domain.Order)}
}

func (m *mockCache) Get(_ context.Context, orderID int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	o, ok := m.orders[orderID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return o.Clone(), nil
}

func (m *mockCache) Set(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.orders[order.ID] = order.Clone()
	return nil
}

func (m *mockCache) has(orderID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[orderID]
	return ok
}

// sequentialIDs returns deterministic transaction ids txn-1, txn-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("txn-%d", n)
	}
}
