package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados persistidos de un crédito. "vencido" se calcula al leer, nunca se guarda.
const (
	CreditStatusPending = "pendiente"
	CreditStatusPaid    = "pagado"
)

// Credit cuenta por cobrar originada por una venta a crédito.
// Amount es fijo; Balance solo disminuye.
type Credit struct {
	ID        string
	ClientID  string
	SaleID    string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Status    string
	DueDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment abono aplicado a un crédito. Solo se agrega, nunca se modifica.
type Payment struct {
	ID            string
	CreditID      string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	CashierID     string
	CreatedAt     time.Time
}
