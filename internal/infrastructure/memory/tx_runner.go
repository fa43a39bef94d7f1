package memory

import (
	"context"

	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
	_ appcredit.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks con repositorios atados a una transacción del almacén.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run transacción de movimientos de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.store.runTx(ctx, func(db session) error {
		return fn(&MovementRepo{db: db}, &ProductRepo{db: db})
	})
}

// RunSale transacción del motor de ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditRepository,
	movRepo repository.InventoryMovementRepository,
	folioRepo repository.FolioSequence,
) error) error {
	return r.store.runTx(ctx, func(db session) error {
		return fn(
			&ProductRepo{db: db},
			&ClientRepo{db: db},
			&SaleRepo{db: db},
			&CreditRepo{db: db},
			&MovementRepo{db: db},
			&FolioRepo{db: db},
		)
	})
}

// RunPayment transacción del motor de abonos.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	creditRepo repository.CreditRepository,
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.store.runTx(ctx, func(db session) error {
		return fn(&CreditRepo{db: db}, &ClientRepo{db: db}, &PaymentRepo{db: db})
	})
}
