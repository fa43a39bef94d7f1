package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CreditRepository  = (*CreditRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

// CreditRepo créditos en memoria.
type CreditRepo struct {
	db session
}

func NewCreditRepository(s *Store) *CreditRepo {
	return &CreditRepo{db: s.session()}
}

func (r *CreditRepo) Create(ctx context.Context, c *entity.Credit) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Credits[c.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *c
		st.Credits[c.ID] = &clone
		return nil
	})
}

func (r *CreditRepo) GetByID(ctx context.Context, id string) (*entity.Credit, error) {
	var out *entity.Credit
	err := r.db.read(ctx, func(st *state) error {
		if c, ok := st.Credits[id]; ok {
			clone := *c
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *CreditRepo) GetForUpdate(ctx context.Context, id string) (*entity.Credit, error) {
	return r.GetByID(ctx, id)
}

func (r *CreditRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status string) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Credits[id]
		if !ok {
			return domain.ErrNotFound
		}
		if balance.IsNegative() || balance.GreaterThan(cur.Amount) {
			return &domain.IntegrityError{Entity: "credit", ID: id, Detail: "saldo fuera de rango " + balance.String()}
		}
		clone := *cur
		clone.Balance = balance
		clone.Status = status
		clone.UpdatedAt = time.Now()
		st.Credits[id] = &clone
		return nil
	})
}

func (r *CreditRepo) List(ctx context.Context, f repository.CreditFilter) ([]*entity.Credit, error) {
	var list []*entity.Credit
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.Credits {
			if f.ClientID != "" && c.ClientID != f.ClientID {
				continue
			}
			if f.Status != "" && c.Status != f.Status {
				continue
			}
			clone := *c
			list = append(list, &clone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *CreditRepo) CountPendingByClient(ctx context.Context, clientID string) (int, error) {
	n := 0
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.Credits {
			if c.ClientID == clientID && c.Status == entity.CreditStatusPending {
				n++
			}
		}
		return nil
	})
	return n, err
}

// PaymentRepo abonos en memoria.
type PaymentRepo struct {
	db session
}

func NewPaymentRepository(s *Store) *PaymentRepo {
	return &PaymentRepo{db: s.session()}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Payments[p.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *p
		st.Payments[p.ID] = &clone
		return nil
	})
}

func (r *PaymentRepo) ListByCredit(ctx context.Context, creditID string) ([]*entity.Payment, error) {
	var list []*entity.Payment
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.Payments {
			if p.CreditID == creditID {
				clone := *p
				list = append(list, &clone)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, err
}
