package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=entrada ajuste"`
	Direction string           `json:"direction" validate:"omitempty,oneof=in out"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason    string           `json:"reason" validate:"max=300"`
}

// MovementListRequest filtros de GET /api/inventory/movements.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
	BranchID  string `query:"branch_id"`
	Type      string `query:"type" validate:"omitempty,oneof=entrada salida ajuste"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Type        string          `json:"type"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reason      string          `json:"reason,omitempty"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CashierID   string          `json:"cashier_id,omitempty"`
	BranchID    string          `json:"branch_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReplenishmentSuggestionDTO producto en stock bajo con la cantidad sugerida a pedir.
type ReplenishmentSuggestionDTO struct {
	ProductID       string          `json:"product_id"`
	Code            string          `json:"code"`
	ProductName     string          `json:"product_name"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	MinStock        decimal.Decimal `json:"min_stock"`
	SuggestedQty    decimal.Decimal `json:"suggested_qty"`  // MinStock * 1.5 - CurrentStock
	EstimatedCost   decimal.Decimal `json:"estimated_cost"` // SuggestedQty * costo promedio
	UnitsSold30Days decimal.Decimal `json:"units_sold_30d"`
	Priority        int             `json:"priority"` // 1 = más urgente
}
