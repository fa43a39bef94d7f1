package credit

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// TxRunner ejecuta el commit de un abono dentro de una transacción.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		creditRepo repository.CreditRepository,
		clientRepo repository.ClientRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
