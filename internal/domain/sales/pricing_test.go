package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name       string
		lines      []Line
		discount   string
		taxEnabled bool
		taxRate    string
		want       Totals
	}{
		{
			name:       "descuento global e IVA",
			lines:      []Line{{Quantity: d("2"), UnitPrice: d("100")}},
			discount:   "10",
			taxEnabled: true,
			taxRate:    "16",
			want:       Totals{Subtotal: d("200"), DiscountAmount: d("20"), TaxableBase: d("180"), TaxAmount: d("28.8"), Total: d("208.8")},
		},
		{
			name:       "sin IVA",
			lines:      []Line{{Quantity: d("3"), UnitPrice: d("10")}},
			discount:   "0",
			taxEnabled: false,
			taxRate:    "16",
			want:       Totals{Subtotal: d("30"), DiscountAmount: d("0"), TaxableBase: d("30"), TaxAmount: d("0"), Total: d("30")},
		},
		{
			name: "descuento por renglón y granel",
			lines: []Line{
				{Quantity: d("1.5"), UnitPrice: d("40"), Discount: d("5")},
				{Quantity: d("1"), UnitPrice: d("9.99")},
			},
			discount:   "0",
			taxEnabled: true,
			taxRate:    "8",
			want:       Totals{Subtotal: d("64.99"), DiscountAmount: d("0"), TaxableBase: d("64.99"), TaxAmount: d("5.1992"), Total: d("70.1892")},
		},
		{
			name:       "carrito vacío",
			discount:   "10",
			taxEnabled: true,
			taxRate:    "16",
			want:       Totals{Subtotal: d("0"), DiscountAmount: d("0"), TaxableBase: d("0"), TaxAmount: d("0"), Total: d("0")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.lines, d(tt.discount), tt.taxEnabled, d(tt.taxRate))
			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.DiscountAmount.Equal(got.DiscountAmount), "descuento %s", got.DiscountAmount)
			assert.True(t, tt.want.TaxableBase.Equal(got.TaxableBase), "base %s", got.TaxableBase)
			assert.True(t, tt.want.TaxAmount.Equal(got.TaxAmount), "iva %s", got.TaxAmount)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

// El total siempre es base + IVA y la base subtotal - descuento, sin redondeos intermedios.
func TestCalculateTotals_Consistencia(t *testing.T) {
	lines := []Line{
		{Quantity: d("0.333"), UnitPrice: d("17.77")},
		{Quantity: d("7"), UnitPrice: d("0.01"), Discount: d("0.02")},
	}
	for _, pct := range []string{"0", "3.5", "33.333", "100"} {
		got := CalculateTotals(lines, d(pct), true, d("16"))
		assert.True(t, got.TaxableBase.Equal(got.Subtotal.Sub(got.DiscountAmount)))
		assert.True(t, got.Total.Equal(got.TaxableBase.Add(got.TaxAmount)))
	}
}

func TestFormatFolio(t *testing.T) {
	assert.Equal(t, "V-000001", FormatFolio(1))
	assert.Equal(t, "V-123456", FormatFolio(123456))
	assert.Equal(t, "V-1234567", FormatFolio(1234567))
}
