package http

import (
	"time"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
)

type LineRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type PaymentRequestDTO struct {
	CardHolderName string `json:"card_holder_name"`
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}

type CheckoutRequestDTO struct {
	Items           []LineRequestDTO       `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Payment         *PaymentRequestDTO     `json:"payment"`
}

func (d *CheckoutRequestDTO) toDomain() *domain.CheckoutRequest {
	lines := make([]domain.LineRequest, 0, len(d.Items))
	for _, item := range d.Items {
		lines = append(lines, domain.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	req := &domain.CheckoutRequest{
		Lines:           lines,
		ShippingAddress: d.ShippingAddress,
	}
	if d.Payment != nil {
		req.Payment = &domain.CardInput{
			HolderName: d.Payment.CardHolderName,
			Number:     d.Payment.CardNumber,
			Expiry:     d.Payment.Expiry,
			CVC:        d.Payment.CVV,
		}
	}
	return req
}

type OrderItemDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type PaymentDTO struct {
	Method         string `json:"method"`
	Status         string `json:"status"`
	CardHolderName string `json:"card_holder_name"`
	CardLast4      string `json:"card_last4"`
	TransactionID  string `json:"transaction_id"`
	PaidAt         string `json:"paid_at"`
}

type OrderResponseDTO struct {
	ID              int64                  `json:"id"`
	Status          string                 `json:"status"`
	TotalAmount     string                 `json:"total_amount"`
	Items           []OrderItemDTO         `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Payment         PaymentDTO             `json:"payment"`
	CreatedAt       string                 `json:"created_at"`
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	items := make([]OrderItemDTO, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItemDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   formatMoney(l.UnitPrice),
			LineTotal:   formatMoney(l.LineTotal),
		})
	}

	return OrderResponseDTO{
		ID:              o.ID,
		Status:          o.Status.String(),
		TotalAmount:     formatMoney(o.TotalAmount),
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		Payment: PaymentDTO{
			Method:         string(o.Payment.Method),
			Status:         o.Payment.Status.String(),
			CardHolderName: o.Payment.CardHolderName,
			CardLast4:      o.Payment.CardLast4,
			TransactionID:  o.Payment.TransactionID,
			PaidAt:         o.Payment.PaidAt.UTC().Format(time.RFC3339),
		},
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// formatMoney renders at least two decimal places and never drops precision.
func formatMoney(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}
