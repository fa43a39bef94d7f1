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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	db session
}

// NewProductRepository construye el repositorio sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{db: s.session()}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *product
		st.Products[product.ID] = &clone
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.read(ctx, func(st *state) error {
		if p, ok := st.Products[id]; ok {
			clone := *p
			out = &clone
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el lock exclusivo del almacén.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update conserva Stock y Cost guardados.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *product
		clone.Stock = cur.Stock
		clone.Cost = cur.Cost
		clone.CreatedAt = cur.CreatedAt
		st.Products[product.ID] = &clone
		return nil
	})
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if stock.IsNegative() {
			return &domain.IntegrityError{Entity: "product", ID: id, Detail: "stock negativo " + stock.String()}
		}
		clone := *cur
		clone.Stock = stock
		clone.UpdatedAt = time.Now()
		st.Products[id] = &clone
		return nil
	})
}

func (r *ProductRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Products[id]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *cur
		clone.Cost = cost
		clone.UpdatedAt = time.Now()
		st.Products[id] = &clone
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	return r.collect(ctx, f.Limit, f.Offset, func(p *entity.Product) bool {
		if f.BranchID != "" && p.BranchID != f.BranchID {
			return false
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			return false
		}
		if f.ActiveOnly && !p.Active {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Code), search) {
			return false
		}
		return true
	})
}

func (r *ProductRepo) ListLowStock(ctx context.Context, branchID string) ([]*entity.Product, error) {
	return r.collect(ctx, 0, 0, func(p *entity.Product) bool {
		return p.Active && (branchID == "" || p.BranchID == branchID) && p.IsLowStock()
	})
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	n := 0
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.Products {
			if p.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Products, id)
		return nil
	})
}

// collect filtra, ordena por nombre y pagina.
func (r *ProductRepo) collect(ctx context.Context, limit, offset int, keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.Products {
			if keep(p) {
				clone := *p
				list = append(list, &clone)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return paginate(list, limit, offset), nil
}
