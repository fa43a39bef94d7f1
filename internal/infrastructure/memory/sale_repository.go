package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository = (*SaleRepo)(nil)
	_ repository.FolioSequence  = (*FolioRepo)(nil)
)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	db session
}

func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{db: s.session()}
}

func cloneSale(s *entity.Sale) *entity.Sale {
	clone := *s
	clone.Items = slices.Clone(s.Items)
	return &clone
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, s := range st.Sales {
			if s.BranchID == sale.BranchID && s.Folio == sale.Folio {
				return domain.ErrDuplicate
			}
		}
		st.Sales[sale.ID] = cloneSale(sale)
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		if s, ok := st.Sales[id]; ok {
			out = cloneSale(s)
		}
		return nil
	})
	return out, err
}

// List ordena de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		for _, s := range st.Sales {
			if matchSale(s, f) {
				list = append(list, cloneSale(s))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, f.Limit, f.Offset), nil
}

func matchSale(s *entity.Sale, f repository.SaleFilter) bool {
	switch {
	case f.BranchID != "" && s.BranchID != f.BranchID:
		return false
	case f.CashierID != "" && s.CashierID != f.CashierID:
		return false
	case f.ClientID != "" && s.ClientID != f.ClientID:
		return false
	case f.Status != "" && s.Status != f.Status:
		return false
	case f.From != nil && s.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && !s.CreatedAt.Before(*f.To):
		return false
	}
	return true
}

// FolioRepo consecutivo por sucursal guardado en el mismo estado que las ventas.
type FolioRepo struct {
	db session
}

func NewFolioRepository(s *Store) *FolioRepo {
	return &FolioRepo{db: s.session()}
}

func (r *FolioRepo) Next(ctx context.Context, branchID string) (int64, error) {
	var n int64
	err := r.db.write(ctx, func(st *state) error {
		st.Folios[branchID]++
		n = st.Folios[branchID]
		return nil
	})
	return n, err
}
