package credit

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreditView crédito con su estado calculado y el nombre del cliente.
type CreditView struct {
	Credit        entity.Credit
	ClientName    string
	DisplayStatus credit.DisplayStatus
	Overdue       bool
	Payments      []*entity.Payment
}

// Summary totales de cuentas por cobrar.
type Summary struct {
	PendingAmount decimal.Decimal
	ActiveCount   int
	OverdueCount  int
	OverdueAmount decimal.Decimal
}

// QueryUseCase lecturas de créditos. No modifica el estado guardado.
type QueryUseCase struct {
	creditRepo  repository.CreditRepository
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
	now         func() time.Time
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	creditRepo repository.CreditRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
) *QueryUseCase {
	return &QueryUseCase{creditRepo: creditRepo, paymentRepo: paymentRepo, clientRepo: clientRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *QueryUseCase) WithClock(now func() time.Time) *QueryUseCase {
	uc.now = now
	return uc
}

// List créditos con estado de presentación. overdueOnly filtra los vencidos a la fecha.
func (uc *QueryUseCase) List(ctx context.Context, f repository.CreditFilter, overdueOnly bool) ([]CreditView, error) {
	if overdueOnly {
		f.Status = entity.CreditStatusPending
	}
	list, err := uc.creditRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	asOf := uc.now()
	names := map[string]string{}
	out := make([]CreditView, 0, len(list))
	for _, c := range list {
		if overdueOnly && !credit.IsOverdue(c, asOf) {
			continue
		}
		name, ok := names[c.ClientID]
		if !ok {
			cl, err := uc.clientRepo.GetByID(ctx, c.ClientID)
			if err != nil {
				return nil, err
			}
			if cl != nil {
				name = cl.Name
			}
			names[c.ClientID] = name
		}
		out = append(out, view(c, name, asOf))
	}
	return out, nil
}

// Get crédito con sus abonos.
func (uc *QueryUseCase) Get(ctx context.Context, id string) (*CreditView, error) {
	c, err := uc.creditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := ""
	if cl, err := uc.clientRepo.GetByID(ctx, c.ClientID); err != nil {
		return nil, err
	} else if cl != nil {
		name = cl.Name
	}
	v := view(c, name, uc.now())
	v.Payments, err = uc.paymentRepo.ListByCredit(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Summary resume los créditos pendientes.
func (uc *QueryUseCase) Summary(ctx context.Context) (*Summary, error) {
	list, err := uc.creditRepo.List(ctx, repository.CreditFilter{Status: entity.CreditStatusPending})
	if err != nil {
		return nil, err
	}
	asOf := uc.now()
	s := &Summary{PendingAmount: decimal.Zero, OverdueAmount: decimal.Zero}
	for _, c := range list {
		s.ActiveCount++
		s.PendingAmount = s.PendingAmount.Add(c.Balance)
		if credit.IsOverdue(c, asOf) {
			s.OverdueCount++
			s.OverdueAmount = s.OverdueAmount.Add(c.Balance)
		}
	}
	return s, nil
}

func view(c *entity.Credit, clientName string, asOf time.Time) CreditView {
	return CreditView{
		Credit:        *c,
		ClientName:    clientName,
		DisplayStatus: credit.Status(c, asOf),
		Overdue:       credit.IsOverdue(c, asOf),
	}
}
