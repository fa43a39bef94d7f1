package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company datos fiscales del negocio (singleton). TaxRate es el IVA en porcentaje (16 = 16%).
type Company struct {
	ID        string
	Name      string
	RFC       string
	Address   string
	Phone     string
	Email     string
	LogoRef   string
	TaxRate   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
