package service

import "errors"

var (
	ErrInvalidRequest      = errors.New("checkout request is required")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductLookupFailed = errors.New("product lookup failed")
	ErrInvalidLineQuantity = errors.New("line quantity must be at least 1")
	ErrInvalidPaymentInput = errors.New("invalid payment input")
	ErrPersistenceFailure  = errors.New("failed to persist order")
	// ErrPersistenceTimeout always travels together with ErrPersistenceFailure.
	ErrPersistenceTimeout = errors.New("order store timed out")
	ErrOrderNotFound      = errors.New("order not found")
)

// IsRetryable reports whether resubmitting the checkout can succeed. Only
// timeouts qualify. The timed-out write may still have committed, so a retry
// can place a second order.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistenceTimeout)
}
