package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de una sucursal.
// Stock solo cambia vía motor de ventas o movimientos de inventario; Code no se valida como único.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	CategoryID  string
	Price1      decimal.Decimal
	Price2      decimal.Decimal
	Price3      decimal.Decimal
	Price4      decimal.Decimal
	Cost        decimal.Decimal // costo promedio ponderado
	Stock       decimal.Decimal // puede ser fraccionario (granel)
	MinStock    decimal.Decimal // umbral de stock bajo
	BranchID    string
	Active      bool
	ImageRef    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceFor devuelve el precio del nivel indicado. Un nivel desconocido devuelve Price1.
func (p *Product) PriceFor(tier PriceTier) decimal.Decimal {
	switch tier {
	case PriceTier2:
		return p.Price2
	case PriceTier3:
		return p.Price3
	case PriceTier4:
		return p.Price4
	default:
		return p.Price1
	}
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}
