package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase registra entradas y ajustes de inventario con bloqueo de fila.
// Las salidas solo las genera el motor de ventas.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.InventoryMovementRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.InventoryMovementRepository,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		log:      log.Component("inventory"),
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// entrada: Quantity > 0, UnitCost opcional (recalcula el costo promedio).
// ajuste: Direction in | out.
type MovementInput struct {
	ProductID string
	Type      string
	Direction string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reason    string
}

// RegisterMovement bloquea el producto (GetForUpdate), aplica el cambio de stock y agrega el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput, cashier entity.CashierContext) (*entity.InventoryMovement, error) {
	if in.ProductID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeEntry:
		in.Direction = entity.DirectionIn
	case entity.MovementTypeAdjustment:
		if in.Direction != entity.DirectionIn && in.Direction != entity.DirectionOut {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		delta := in.Quantity
		if in.Direction == entity.DirectionOut {
			delta = delta.Neg()
		}
		next, ok := inventory.ApplyDelta(product.Stock, delta)
		if !ok {
			return &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   in.Quantity,
			}
		}

		unitCost := product.Cost
		if in.UnitCost != nil && in.Direction == entity.DirectionIn {
			unitCost = *in.UnitCost
			cost := inventory.WeightedCost(product.Stock, product.Cost, in.Quantity, unitCost)
			if err := productRepo.UpdateCost(ctx, product.ID, cost); err != nil {
				return err
			}
		}
		if err := productRepo.UpdateStock(ctx, product.ID, next); err != nil {
			return err
		}

		mov = &entity.InventoryMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      in.Type,
			Direction: in.Direction,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			Reason:    in.Reason,
			CashierID: cashier.UserID,
			BranchID:  product.BranchID,
			CreatedAt: uc.now(),
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Str("direction", mov.Direction).
		Str("quantity", mov.Quantity.String()).
		Msg("movimiento de inventario")
	return mov, nil
}

// ListMovements consulta la bitácora; límite por defecto 50.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return uc.movRepo.List(ctx, f)
}
