package inventory

import "github.com/shopspring/decimal"

// WeightedCost recalcula el costo promedio ponderado tras una entrada.
// ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada)
func WeightedCost(stock, cost, entryQty, entryCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	total := stock.Add(entryQty)
	if !total.IsPositive() {
		return entryCost
	}
	return stock.Mul(cost).Add(entryQty.Mul(entryCost)).DivRound(total, 4)
}

// ApplyDelta suma una cantidad con signo al stock; ok es false si el resultado queda negativo.
func ApplyDelta(stock, delta decimal.Decimal) (next decimal.Decimal, ok bool) {
	next = stock.Add(delta)
	return next, !next.IsNegative()
}
