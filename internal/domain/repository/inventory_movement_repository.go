package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// MovementFilter criterios de consulta de la bitácora de inventario.
type MovementFilter struct {
	ProductID string
	BranchID  string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// InventoryMovementRepository bitácora de movimientos (solo alta y consulta).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.InventoryMovement, error)
}
