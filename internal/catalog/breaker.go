package catalog

import (
	"context"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/sony/gobreaker/v2"
)

type lookupResult struct {
	product domain.Product
	found   bool
}

type BreakerSettings struct {
	Name string
	// MaxFailures is the number of consecutive lookup errors that opens the breaker.
	MaxFailures uint32
	OpenTimeout time.Duration
	// OnStateChange is optional.
	OnStateChange func(name string, from, to gobreaker.State)
}

// BreakerLookup stops calling the catalog after repeated infrastructure
// failures. A missing product is a successful lookup and never trips it.
type BreakerLookup struct {
	next Lookup
	cb   *gobreaker.CircuitBreaker[lookupResult]
}

func NewBreakerLookup(next Lookup, s BreakerSettings) *BreakerLookup {
	maxFailures := s.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := s.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[lookupResult](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: s.OnStateChange,
	})

	return &BreakerLookup{next: next, cb: cb}
}

func (b *BreakerLookup) GetProduct(ctx context.Context, id int64) (domain.Product, bool, error) {
	res, err := b.cb.Execute(func() (lookupResult, error) {
		p, found, err := b.next.GetProduct(ctx, id)
		return lookupResult{product: p, found: found}, err
	})
	if err != nil {
		return domain.Product{}, false, err
	}
	return res.product, res.found, nil
}

func (b *BreakerLookup) State() gobreaker.State {
	return b.cb.State()
}
