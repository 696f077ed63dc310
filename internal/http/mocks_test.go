package http

import (
	"context"

	"github.com/sejalm1919/E-Commerce/internal/domain"
)

type CheckoutServiceMock struct {
	order     *domain.Order
	orders    []*domain.Order
	err       error
	lastReq   *domain.CheckoutRequest
	lastID    int64
	lastLimit int
}

func (m *CheckoutServiceMock) PlaceOrder(_ context.Context, req *domain.CheckoutRequest) (*domain.Order, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *CheckoutServiceMock) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *CheckoutServiceMock) ListOrders(_ context.Context, limit int) ([]*domain.Order, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}
