package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingAddress is copied into every order; orders never reference a shared address.
type ShippingAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// OrderLine captures the unit price at the moment of checkout.
type OrderLine struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type Payment struct {
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	CardHolderName string        `json:"card_holder_name"`
	CardLast4      string        `json:"card_last4"`
	TransactionID  string        `json:"transaction_id"`
	PaidAt         time.Time     `json:"paid_at"`
}

// Order is the aggregate root. Lines and Payment are owned by value and are
// persisted together with the order or not at all.
type Order struct {
	ID              int64
	CreatedAt       time.Time
	Status          OrderStatus
	ShippingAddress ShippingAddress
	Lines           []OrderLine
	TotalAmount     decimal.Decimal
	Payment         Payment
}

// Clone returns a deep copy so stores and caches never share line slices with callers.
func (o *Order) Clone() *Order {
	c := *o
	if o.Lines != nil {
		c.Lines = make([]OrderLine, len(o.Lines))
		copy(c.Lines, o.Lines)
	}
	return &c
}
