package repository

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
)

const EventTypeOrderPlaced = "order.placed"

type orderPlacedItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// OrderPlacedEvent is the outbox payload. Amounts are strings so consumers
// never see them as floats.
type OrderPlacedEvent struct {
	OrderID       int64             `json:"order_id"`
	Status        string            `json:"status"`
	TotalAmount   string            `json:"total_amount"`
	Items         []orderPlacedItem `json:"items"`
	TransactionID string            `json:"transaction_id"`
	CardLast4     string            `json:"card_last4"`
	PlacedAt      time.Time         `json:"placed_at"`
}

func newOrderPlacedPayload(order *domain.Order) ([]byte, error) {
	items := make([]orderPlacedItem, len(order.Lines))
	for i, l := range order.Lines {
		items[i] = orderPlacedItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			LineTotal: l.LineTotal.String(),
		}
	}
	return json.Marshal(OrderPlacedEvent{
		OrderID:       order.ID,
		Status:        order.Status.String(),
		TotalAmount:   order.TotalAmount.String(),
		Items:         items,
		TransactionID: order.Payment.TransactionID,
		CardLast4:     order.Payment.CardLast4,
		PlacedAt:      order.CreatedAt,
	})
}

func aggregateID(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}
