package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest body de POST /api/credits/:id/payments.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=efectivo tarjeta transferencia"`
}

// CreditListRequest filtros de GET /api/credits. Status acepta pendiente, pagado o vencido.
type CreditListRequest struct {
	PageRequest
	ClientID string `query:"client_id"`
	Status   string `query:"status" validate:"omitempty,oneof=pendiente pagado vencido"`
}

// PaymentResponse salida de un abono.
type PaymentResponse struct {
	ID            string          `json:"id"`
	CreditID      string          `json:"credit_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	CashierID     string          `json:"cashier_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreditResponse crédito con estado calculado a la fecha de consulta.
type CreditResponse struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"client_id"`
	ClientName    string            `json:"client_name,omitempty"`
	SaleID        string            `json:"sale_id"`
	Amount        decimal.Decimal   `json:"amount"`
	Balance       decimal.Decimal   `json:"balance"`
	Status        string            `json:"status"`
	DisplayStatus string            `json:"display_status"`
	Overdue       bool              `json:"overdue"`
	DueDate       time.Time         `json:"due_date"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreditSummaryResponse resumen de cuentas por cobrar.
type CreditSummaryResponse struct {
	PendingAmount decimal.Decimal `json:"pending_amount"`
	ActiveCount   int             `json:"active_count"`
	OverdueCount  int             `json:"overdue_count"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
}
