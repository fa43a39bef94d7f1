package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ApplyPaymentInput abono a un crédito.
type ApplyPaymentInput struct {
	CreditID      string
	Amount        decimal.Decimal
	PaymentMethod entity.PaymentMethod
}

// ApplyPaymentUseCase aplica abonos y mantiene el saldo del cliente igual a la suma de sus créditos pendientes.
type ApplyPaymentUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(txRunner TxRunner, log *logger.Logger) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{txRunner: txRunner, log: log.Component("credits"), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ApplyPaymentUseCase) WithClock(now func() time.Time) *ApplyPaymentUseCase {
	uc.now = now
	return uc
}

// ApplyPayment valida monto > 0, monto <= saldo y crédito pendiente; después registra el abono,
// reduce el saldo (pagado exactamente en cero) y descuenta el abono del saldo del cliente.
// Un crédito vencido sigue aceptando abonos: vencido es solo una vista.
func (uc *ApplyPaymentUseCase) ApplyPayment(ctx context.Context, in ApplyPaymentInput, cashier entity.CashierContext) (*entity.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if in.CreditID == "" || !in.PaymentMethod.ValidForInstallment() {
		return nil, domain.ErrInvalidInput
	}
	if cashier.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	var payment *entity.Payment
	var remaining decimal.Decimal
	err := uc.txRunner.RunPayment(ctx, func(
		creditRepo repository.CreditRepository,
		clientRepo repository.ClientRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		cr, err := creditRepo.GetForUpdate(ctx, in.CreditID)
		if err != nil {
			return err
		}
		if cr == nil {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(cr.Balance) {
			return domain.ErrOverpayment
		}
		if cr.Status != entity.CreditStatusPending {
			return domain.ErrCreditClosed
		}

		now := uc.now()
		payment = &entity.Payment{
			ID:            uuid.New().String(),
			CreditID:      cr.ID,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			CashierID:     cashier.UserID,
			CreatedAt:     now,
		}
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		remaining = cr.Balance.Sub(in.Amount)
		status := entity.CreditStatusPending
		if remaining.IsZero() {
			status = entity.CreditStatusPaid
		}
		if err := creditRepo.UpdateBalance(ctx, cr.ID, remaining, status); err != nil {
			return err
		}

		client, err := clientRepo.GetForUpdate(ctx, cr.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return uc.integrity(&domain.IntegrityError{Entity: "client", ID: cr.ClientID, Detail: "crédito " + cr.ID + " sin cliente"})
		}
		current := client.CurrentCredit.Sub(in.Amount)
		if current.IsNegative() {
			return uc.integrity(&domain.IntegrityError{Entity: "client", ID: client.ID, Detail: "saldo de crédito negativo " + current.String()})
		}
		return clientRepo.UpdateCurrentCredit(ctx, client.ID, current)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", payment.ID).
		Str("credit_id", payment.CreditID).
		Str("amount", payment.Amount.String()).
		Str("balance", remaining.String()).
		Msg("abono aplicado")
	return payment, nil
}

func (uc *ApplyPaymentUseCase) integrity(err *domain.IntegrityError) error {
	uc.log.Error().Err(err).Str("entity", err.Entity).Str("id", err.ID).Msg("integridad de crédito")
	return err
}
