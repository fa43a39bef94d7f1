package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest alta o edición de cliente. CurrentCredit no se recibe: lo mantienen los motores.
type ClientRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	RFC         string          `json:"rfc" validate:"omitempty,min=12,max=13"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone" validate:"max=30"`
	Address     string          `json:"address" validate:"max=300"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Active      *bool           `json:"active"`
}

// ClientListRequest filtros de GET /api/clients.
type ClientListRequest struct {
	PageRequest
	Search     string `query:"q"`
	ActiveOnly bool   `query:"active"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	RFC             string          `json:"rfc,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CurrentCredit   decimal.Decimal `json:"current_credit"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ClientStatementResponse estado de cuenta: ventas, créditos y abonos del cliente.
type ClientStatementResponse struct {
	Client  ClientResponse   `json:"client"`
	Sales   []SaleResponse   `json:"sales"`
	Credits []CreditResponse `json:"credits"`
}
