package pricing

import (
	"testing"

	"github.com/sejalm1919/E-Commerce/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{name: "single unit", price: "5.50", quantity: 1, want: "5.50"},
		{name: "multiple units", price: "10.00", quantity: 2, want: "20.00"},
		{name: "binary unfriendly price", price: "0.10", quantity: 3, want: "0.30"},
		{name: "sub cent precision kept", price: "19.999", quantity: 7, want: "139.993"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{ID: 1, Price: decimal.RequireFromString(tt.price)}
			got, err := PriceLine(p, tt.quantity)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPriceLine_RejectsNonPositiveQuantity(t *testing.T) {
	p := domain.Product{ID: 7, Price: decimal.RequireFromString("1.00")}

	for _, q := range []int{0, -1} {
		_, err := PriceLine(p, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestSum_Empty(t *testing.T) {
	assert.True(t, Sum().Equal(decimal.Zero))
}

func TestSum_NoDriftOverManyLines(t *testing.T) {
	p := domain.Product{ID: 1, Price: decimal.RequireFromString("0.10")}

	lines := make([]decimal.Decimal, 0, 10000)
	for i := 0; i < 10000; i++ {
		lt, err := PriceLine(p, 1)
		require.NoError(t, err)
		lines = append(lines, lt)
	}

	assert.Equal(t, "1000", Sum(lines...).String())
}
