package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sejalm1919/E-Commerce/internal/cache"
	"github.com/sejalm1919/E-Commerce/internal/domain"
	"golang.org/x/sync/singleflight"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, request *domain.CheckoutRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, limit int) ([]*domain.Order, error)
}

// ProductLookup reports found=false for unknown products; err is reserved
// for infrastructure failures.
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (product domain.Product, found bool, err error)
}

type PaymentAuthorizer interface {
	Authorize(card *domain.CardInput) (domain.Payment, error)
}

type CheckoutServiceImpl struct {
	store   *StoreHandler
	product *ProductHandler
	payment PaymentAuthorizer
	cache   cache.OrderCache // nil disables caching of the read path
	sfg     singleflight.Group
	now     func() time.Time
	log     zerolog.Logger
}

func NewCheckoutService(
	store *StoreHandler,
	product *ProductHandler,
	payment PaymentAuthorizer,
	orderCache cache.OrderCache,
	log zerolog.Logger) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		store:   store,
		product: product,
		payment: payment,
		cache:   orderCache,
		now:     time.Now,
		log:     log,
	}
}
