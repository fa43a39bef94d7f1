// Package sales contiene el cálculo puro de totales de una venta.
package sales

import "github.com/shopspring/decimal"

// Line renglón de carrito ya valuado.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento del renglón en moneda
}

// Subtotal = Quantity*UnitPrice - Discount.
func (l Line) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Sub(l.Discount)
}

// Totals resultado del cálculo. Ningún valor se redondea; el redondeo es solo de presentación.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// CalculateTotals aplica, en este orden: subtotal, descuento global, base gravable, IVA y total.
// discountPercent y taxRatePercent se expresan en porcentaje (10 = 10%).
func CalculateTotals(lines []Line, discountPercent decimal.Decimal, taxEnabled bool, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	discount := percentOf(subtotal, discountPercent)
	base := subtotal.Sub(discount)
	tax := decimal.Zero
	if taxEnabled {
		tax = percentOf(base, taxRatePercent)
	}
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableBase:    base,
		TaxAmount:      tax,
		Total:          base.Add(tax),
	}
}

// percentOf es exacto: multiplica y recorre el punto decimal dos posiciones.
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}
