package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBreakdownOf(t *testing.T) {
	tests := []struct {
		name         string
		gross        string
		wantSubtotal string
		wantTax      string
	}{
		{
			name:         "two items of twenty",
			gross:        "40.00",
			wantSubtotal: "33.9",
			wantTax:      "6.1",
		},
		{
			name:         "zero total",
			gross:        "0",
			wantSubtotal: "0",
			wantTax:      "0",
		},
		{
			name:         "single sol",
			gross:        "1.00",
			wantSubtotal: "0.85",
			wantTax:      "0.15",
		},
		{
			name:         "large amount",
			gross:        "11800.00",
			wantSubtotal: "10000",
			wantTax:      "1800",
		},
		{
			name:         "rounding remainder goes to tax",
			gross:        "100.00",
			wantSubtotal: "84.75",
			wantTax:      "15.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross := decimal.RequireFromString(tt.gross)
			b := BreakdownOf(gross)

			assert.True(t, b.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal: got %s, want %s", b.Subtotal, tt.wantSubtotal)
			assert.True(t, b.Tax.Equal(decimal.RequireFromString(tt.wantTax)),
				"tax: got %s, want %s", b.Tax, tt.wantTax)
			assert.True(t, b.Total.Equal(gross))
			assert.True(t, b.Subtotal.Add(b.Tax).Equal(gross),
				"subtotal + tax must reconstruct the gross exactly")
		})
	}
}

func TestBaseAmount(t *testing.T) {
	base := BaseAmount(decimal.RequireFromString("118"))
	assert.True(t, base.Equal(decimal.RequireFromString("100")))
}

func TestExtractIGV(t *testing.T) {
	tax := ExtractIGV(decimal.RequireFromString("118"))
	assert.True(t, tax.Equal(decimal.RequireFromString("18")))
}
