package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry      = "entrada"
	MovementTypeExit       = "salida"
	MovementTypeAdjustment = "ajuste"
)

// Sentido del movimiento sobre el stock.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// InventoryMovement bitácora de cambios de stock (solo se agrega).
// Quantity siempre es positiva; el sentido lo dan Type y Direction.
type InventoryMovement struct {
	ID          string
	ProductID   string
	Type        string
	Direction   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Reason      string
	ReferenceID string // venta que originó la salida
	CashierID   string
	BranchID    string
	CreatedAt   time.Time
}

// SignedQuantity devuelve la cantidad con signo según Direction.
func (m *InventoryMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == DirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
