package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	List(ctx context.Context) ([]*entity.Branch, error)
	Delete(ctx context.Context, id string) error
}

// RegisterRepository define el puerto de persistencia para cajas.
type RegisterRepository interface {
	Create(ctx context.Context, register *entity.Register) error
	GetByID(ctx context.Context, id string) (*entity.Register, error)
	Update(ctx context.Context, register *entity.Register) error
	// ListByBranch devuelve las cajas de la sucursal en orden de creación; branchID vacío = todas.
	ListByBranch(ctx context.Context, branchID string) ([]*entity.Register, error)
	Delete(ctx context.Context, id string) error
}
