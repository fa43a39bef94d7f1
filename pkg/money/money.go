// Package money formatea importes para tickets y reportes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// Format devuelve el importe con separador de miles y dos decimales, ej. "$1,234.50".
// El redondeo ocurre solo aquí.
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}

// Quantity formatea cantidades sin ceros sobrantes (2, 1.5, 0.125).
func Quantity(d decimal.Decimal) string {
	return d.String()
}
