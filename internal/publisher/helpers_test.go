package publisher

import (
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
)

func newOrder(transactionID string) *domain.Order {
	return &domain.Order{
		CreatedAt: time.Now(),
		Status:    domain.OrderStatusPlaced,
		Lines: []domain.OrderLine{
			{ProductID: 4, ProductName: "Backpack", Quantity: 1, UnitPrice: decimal.RequireFromString("49.95"), LineTotal: decimal.RequireFromString("49.95")},
		},
		TotalAmount: decimal.RequireFromString("49.95"),
		Payment: domain.Payment{
			Method:        domain.PaymentMethodCard,
			Status:        domain.PaymentStatusSuccess,
			CardLast4:     "0004",
			TransactionID: transactionID,
			PaidAt:        time.Now(),
		},
	}
}
