package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/cache"
	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/sejalm1919/E-Commerce/internal/logger"
	"github.com/sejalm1919/E-Commerce/internal/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	cacheWriteTimeout = 2 * time.Second
)

// GetOrder reads through the cache. Placed orders never change, so a cached
// copy is never stale. Concurrent readers of one order share a single load;
// the load outlives any one caller and each caller only waits on its own ctx.
func (s *CheckoutServiceImpl) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	log := logger.FromContext(ctx, s.log)

	ch := s.sfg.DoChan(strconv.FormatInt(orderID, 10), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.store.timeout)
		defer cancel()

		if s.cache != nil {
			order, err := s.cache.Get(loadCtx, orderID)
			if err == nil {
				return order, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Warn().Err(err).Int64("order_id", orderID).Msg("cache get failed")
			}
		}

		order, err := s.store.repo.GetOrderByID(loadCtx, orderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
		}
		if err != nil {
			return nil, fmt.Errorf("get order %d: %w", orderID, err)
		}

		if s.cache != nil {
			cached := order.Clone()
			go func() {
				setCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
				defer cancel()
				if err := s.cache.Set(setCtx, cached); err != nil {
					log.Warn().Err(err).Int64("order_id", orderID).Msg("cache set failed")
				}
			}()
		}

		return order, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get order %d: %w", orderID, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// callers sharing a singleflight result must not share the lines slice
		return res.Val.(*domain.Order).Clone(), nil
	}
}

// ListOrders returns the newest orders first. limit falls back to
// DefaultListLimit when not positive and is capped at MaxListLimit.
func (s *CheckoutServiceImpl) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.store.timeout)
	defer cancel()

	orders, err := s.store.repo.ListOrders(storeCtx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}
