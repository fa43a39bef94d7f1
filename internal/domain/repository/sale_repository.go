package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// SaleFilter criterios de consulta de ventas. Los campos vacíos no filtran.
type SaleFilter struct {
	BranchID  string
	CashierID string
	ClientID  string
	Status    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SaleRepository persiste ventas junto con sus renglones. No hay actualización.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}

// FolioSequence entrega el siguiente consecutivo de folio por sucursal.
type FolioSequence interface {
	Next(ctx context.Context, branchID string) (int64, error)
}
