package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/sejalm1919/E-Commerce/internal/logger"
	"github.com/sejalm1919/E-Commerce/internal/pricing"
	"github.com/shopspring/decimal"
)

// PlaceOrder prices every line against the current catalog, records a
// simulated card payment and persists the order with its lines and payment
// as one unit. Any failure before persistence leaves the store untouched.
// Calls are not idempotent: resubmitting the same request places a second order.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, request *domain.CheckoutRequest) (*domain.Order, error) {
	log := logger.FromContext(ctx, s.log)

	if request == nil {
		return nil, ErrInvalidRequest
	}

	for i, line := range request.Lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: line %d (product %d) has quantity %d",
				ErrInvalidLineQuantity, i, line.ProductID, line.Quantity)
		}
	}

	order := &domain.Order{
		CreatedAt:       s.now(),
		Status:          domain.OrderStatusPlaced,
		ShippingAddress: request.ShippingAddress,
		Lines:           make([]domain.OrderLine, 0, len(request.Lines)),
	}

	lineTotals := make([]decimal.Decimal, 0, len(request.Lines))
	for _, line := range request.Lines {
		product, err := s.findProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		lineTotal, err := pricing.PriceLine(product, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLineQuantity, err)
		}

		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		lineTotals = append(lineTotals, lineTotal)
	}
	order.TotalAmount = pricing.Sum(lineTotals...)

	payment, err := s.payment.Authorize(request.Payment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPaymentInput, err)
	}
	order.Payment = payment

	saved, err := s.saveOrder(ctx, order)
	if err != nil {
		log.Error().Err(err).
			Str("transaction_id", payment.TransactionID).
			Int("lines", len(order.Lines)).
			Msg("order was not persisted")
		return nil, err
	}

	log.Info().
		Int64("order_id", saved.ID).
		Str("total", saved.TotalAmount.StringFixed(2)).
		Int("lines", len(saved.Lines)).
		Str("transaction_id", saved.Payment.TransactionID).
		Msg("order placed")

	return saved, nil
}

func (s *CheckoutServiceImpl) findProduct(ctx context.Context, productID int64) (domain.Product, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.product.timeout)
	defer cancel()

	product, found, err := s.product.lookup.GetProduct(lookupCtx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: product %d: %w", ErrProductLookupFailed, productID, err)
	}
	if !found {
		return domain.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	return product, nil
}

func (s *CheckoutServiceImpl) saveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.store.timeout)
	defer cancel()

	saved, err := s.store.repo.SaveOrder(storeCtx, order)
	if err == nil {
		return saved, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(storeCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %w: %w", ErrPersistenceFailure, ErrPersistenceTimeout, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
}
