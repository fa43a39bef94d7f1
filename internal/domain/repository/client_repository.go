package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ClientRepository define el puerto de persistencia para Client.
// Update nunca escribe CurrentCredit; solo UpdateCurrentCredit, usado por los motores.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	UpdateCurrentCredit(ctx context.Context, id string, current decimal.Decimal) error
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
