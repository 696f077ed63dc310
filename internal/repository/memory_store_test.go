package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(transactionID string) *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		CreatedAt: now,
		Status:    domain.OrderStatusPlaced,
		ShippingAddress: domain.ShippingAddress{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Street:    "12 St James's Square",
			City:      "London",
			Zip:       "SW1Y",
		},
		Lines: []domain.OrderLine{
			{ProductID: 1, ProductName: "Notebook", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), LineTotal: decimal.RequireFromString("20.00")},
			{ProductID: 2, ProductName: "Gel Pen", Quantity: 1, UnitPrice: decimal.RequireFromString("5.50"), LineTotal: decimal.RequireFromString("5.50")},
		},
		TotalAmount: decimal.RequireFromString("25.50"),
		Payment: domain.Payment{
			Method:         domain.PaymentMethodCard,
			Status:         domain.PaymentStatusSuccess,
			CardHolderName: "Ada Lovelace",
			CardLast4:      "4242",
			TransactionID:  transactionID,
			PaidAt:         now,
		},
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saved, err := store.SaveOrder(ctx, newTestOrder("txn-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	got, err := store.GetOrderByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Notebook", got.Lines[0].ProductName)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("25.5")))
}

func TestMemoryStore_InputNotMutated(t *testing.T) {
	store := NewMemoryStore()
	order := newTestOrder("txn-1")

	saved, err := store.SaveOrder(context.Background(), order)
	require.NoError(t, err)

	assert.Zero(t, order.ID)
	saved.Lines[0].Quantity = 99

	got, err := store.GetOrderByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetOrderByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryStore_DuplicateTransaction(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.SaveOrder(ctx, newTestOrder("txn-1"))
	require.NoError(t, err)

	_, err = store.SaveOrder(ctx, newTestOrder("txn-1"))
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	orders, err := store.ListOrders(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SaveOrder(ctx, newTestOrder("txn-1"))
	assert.ErrorIs(t, err, context.Canceled)

	orders, err := store.ListOrders(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryStore_ConcurrentSavesGetDistinctIDs(t *testing.T) {
	store := NewMemoryStore()
	const n = 50

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, err := store.SaveOrder(context.Background(), newTestOrder(fmt.Sprintf("txn-%d", i)))
			if assert.NoError(t, err) {
				ids <- saved.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryStore_ListOrdersNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		o := newTestOrder(fmt.Sprintf("txn-%d", i))
		o.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := store.SaveOrder(ctx, o)
		require.NoError(t, err)
	}

	orders, err := store.ListOrders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(3), orders[0].ID)
	assert.Equal(t, int64(2), orders[1].ID)
}

func TestMemoryStore_OutboxEvents(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saved, err := store.SaveOrder(ctx, newTestOrder("txn-1"))
	require.NoError(t, err)

	events, err := store.GetUnprocessedEvents(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderPlaced, events[0].EventType)
	assert.Equal(t, "1", events[0].AggregateId)

	var payload OrderPlacedEvent
	require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
	assert.Equal(t, saved.ID, payload.OrderID)
	assert.Equal(t, "25.5", payload.TotalAmount)
	assert.Equal(t, "txn-1", payload.TransactionID)
	assert.Len(t, payload.Items, 2)

	require.NoError(t, store.MarkEventAsProcessed(ctx, events[0].ID))

	events, err = store.GetUnprocessedEvents(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Error(t, store.MarkEventAsProcessed(ctx, 999))
}
