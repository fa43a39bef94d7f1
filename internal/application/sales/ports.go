package sales

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta el commit de una venta dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error nada de lo escrito queda visible.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditRepository,
		movRepo repository.InventoryMovementRepository,
		folioRepo repository.FolioSequence,
	) error) error
}
