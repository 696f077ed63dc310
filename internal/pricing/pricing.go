// Package pricing computes line and order totals with exact decimal arithmetic.
package pricing

import (
	"errors"
	"fmt"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// PriceLine multiplies the current product price by the quantity without rounding.
func PriceLine(product domain.Product, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: got %d for product %d", ErrInvalidQuantity, quantity, product.ID)
	}
	return product.Price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Sum adds line totals in the order given. No lines sum to zero.
func Sum(lineTotals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, lt := range lineTotals {
		total = total.Add(lt)
	}
	return total
}
