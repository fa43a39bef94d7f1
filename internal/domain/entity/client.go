package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente que puede comprar a crédito.
// CurrentCredit es la suma de saldos de sus créditos pendientes; solo lo mueven los motores de venta y abonos.
type Client struct {
	ID            string
	Name          string
	RFC           string
	Email         string
	Phone         string
	Address       string
	CreditLimit   decimal.Decimal
	CurrentCredit decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableCredit = CreditLimit - CurrentCredit.
func (c *Client) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentCredit)
}
