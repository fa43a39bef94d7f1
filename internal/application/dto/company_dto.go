package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateCompanyRequest datos de la empresa; TaxRate es el IVA en porcentaje.
type UpdateCompanyRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	RFC     string          `json:"rfc" validate:"omitempty,min=12,max=13"`
	Address string          `json:"address" validate:"max=300"`
	Phone   string          `json:"phone" validate:"max=30"`
	Email   string          `json:"email" validate:"omitempty,email"`
	LogoRef string          `json:"logo_ref" validate:"max=500"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// CompanyResponse salida de la empresa.
type CompanyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	RFC       string          `json:"rfc"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	LogoRef   string          `json:"logo_ref,omitempty"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PriceLabelsDTO etiquetas de los cuatro niveles de precio.
type PriceLabelsDTO struct {
	Price1 string `json:"price1" validate:"required,max=40"`
	Price2 string `json:"price2" validate:"required,max=40"`
	Price3 string `json:"price3" validate:"required,max=40"`
	Price4 string `json:"price4" validate:"required,max=40"`
}

// BranchRequest alta o edición de sucursal.
type BranchRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Address string `json:"address" validate:"max=300"`
	Phone   string `json:"phone" validate:"max=30"`
	Active  *bool  `json:"active"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest alta o edición de caja.
type RegisterRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Active   *bool  `json:"active"`
}

// RegisterResponse salida de una caja.
type RegisterResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
