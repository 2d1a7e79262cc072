package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestComputePrice(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		seats      int
		percentage string
		discount   string
		total      string
	}{
		{"no discount", "95.00", 2, "0", "0.00", "190.00"},
		{"thirty percent on two seats", "95.00", 2, "30", "57.00", "133.00"},
		{"single seat", "120.50", 1, "25", "30.13", "90.37"},
		{"full discount", "50.00", 3, "100", "150.00", "0.00"},
		{"fractional percentage", "33.33", 3, "12.5", "12.50", "87.49"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			discount, total := ComputePrice(dec(t, tc.unitPrice), tc.seats, dec(t, tc.percentage))

			assert.Equal(t, tc.discount, discount.StringFixed(2))
			assert.Equal(t, tc.total, total.StringFixed(2))
		})
	}
}

func TestComputePriceDeterministic(t *testing.T) {
	unit := dec(t, "95.00")
	pct := dec(t, "30")

	firstDiscount, firstTotal := ComputePrice(unit, 2, pct)
	for i := 0; i < 100; i++ {
		discount, total := ComputePrice(unit, 2, pct)
		assert.True(t, discount.Equal(firstDiscount))
		assert.True(t, total.Equal(firstTotal))
	}
}

func TestComputePriceNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style amounts must stay exact.
	discount, total := ComputePrice(dec(t, "0.10"), 3, dec(t, "10"))

	assert.Equal(t, "0.03", discount.StringFixed(2))
	assert.Equal(t, "0.27", total.StringFixed(2))
}
