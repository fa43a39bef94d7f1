package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	db session
}

func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{db: s.session()}
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *c
		st.Clients[c.ID] = &clone
		return nil
	})
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.db.read(ctx, func(st *state) error {
		if c, ok := st.Clients[id]; ok {
			clone := *c
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) GetForUpdate(ctx context.Context, id string) (*entity.Client, error) {
	return r.GetByID(ctx, id)
}

// Update conserva CurrentCredit guardado.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *c
		clone.CurrentCredit = cur.CurrentCredit
		clone.CreatedAt = cur.CreatedAt
		st.Clients[c.ID] = &clone
		return nil
	})
}

func (r *ClientRepo) UpdateCurrentCredit(ctx context.Context, id string, current decimal.Decimal) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Clients[id]
		if !ok {
			return domain.ErrNotFound
		}
		if current.IsNegative() {
			return &domain.IntegrityError{Entity: "client", ID: id, Detail: "saldo de crédito negativo " + current.String()}
		}
		clone := *cur
		clone.CurrentCredit = current
		clone.UpdatedAt = time.Now()
		st.Clients[id] = &clone
		return nil
	})
}

func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var list []*entity.Client
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.Clients {
			if f.ActiveOnly && !c.Active {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(c.Name), search) &&
				!strings.Contains(strings.ToLower(c.RFC), search) &&
				!strings.Contains(c.Phone, search) {
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
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.db.read(ctx, func(st *state) error {
		n = len(st.Clients)
		return nil
	})
	return n, err
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Clients[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Clients, id)
		return nil
	})
}
