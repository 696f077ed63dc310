package cache

import (
	"context"
	"errors"

	"github.com/sejalm1919/E-Commerce/internal/domain"
)

// OrderCache holds placed orders. Orders never change after creation, so
// entries are only ever written and expire by TTL.
type OrderCache interface {
	Get(ctx context.Context, orderID int64) (*domain.Order, error)
	Set(ctx context.Context, order *domain.Order) error
}

var ErrCacheMiss = errors.New("cache miss")
