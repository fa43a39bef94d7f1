package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	db session
}

func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{db: s.session()}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *c
		st.Categories[c.ID] = &clone
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.db.read(ctx, func(st *state) error {
		if c, ok := st.Categories[id]; ok {
			clone := *c
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Categories[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *c
		clone.CreatedAt = cur.CreatedAt
		st.Categories[c.ID] = &clone
		return nil
	})
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.Categories {
			clone := *c
			list = append(list, &clone)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Categories[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Categories, id)
		return nil
	})
}
