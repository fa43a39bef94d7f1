package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreditFilter criterios de listado de créditos.
type CreditFilter struct {
	ClientID string
	Status   string // estado persistido: pendiente | pagado
	Limit    int
	Offset   int
}

// CreditRepository define el puerto de persistencia para Credit.
type CreditRepository interface {
	Create(ctx context.Context, credit *entity.Credit) error
	GetByID(ctx context.Context, id string) (*entity.Credit, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Credit, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status string) error
	List(ctx context.Context, filter CreditFilter) ([]*entity.Credit, error)
	CountPendingByClient(ctx context.Context, clientID string) (int, error)
}

// PaymentRepository abonos (solo alta y consulta).
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCredit(ctx context.Context, creditID string) ([]*entity.Payment, error)
}
