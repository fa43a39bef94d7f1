package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.RegisterRepository = (*RegisterRepo)(nil)
)

// BranchRepo sucursales en memoria.
type BranchRepo struct {
	db session
}

func NewBranchRepository(s *Store) *BranchRepo {
	return &BranchRepo{db: s.session()}
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Branches[b.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *b
		st.Branches[b.ID] = &clone
		return nil
	})
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.db.read(ctx, func(st *state) error {
		if b, ok := st.Branches[id]; ok {
			clone := *b
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Branches[b.ID]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *b
		clone.CreatedAt = cur.CreatedAt
		st.Branches[b.ID] = &clone
		return nil
	})
}

func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	var list []*entity.Branch
	err := r.db.read(ctx, func(st *state) error {
		for _, b := range st.Branches {
			clone := *b
			list = append(list, &clone)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, err
}

func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Branches[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Branches, id)
		return nil
	})
}

// RegisterRepo cajas en memoria.
type RegisterRepo struct {
	db session
}

func NewRegisterRepository(s *Store) *RegisterRepo {
	return &RegisterRepo{db: s.session()}
}

func (r *RegisterRepo) Create(ctx context.Context, reg *entity.Register) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Registers[reg.ID]; ok {
			return domain.ErrDuplicate
		}
		clone := *reg
		st.Registers[reg.ID] = &clone
		return nil
	})
}

func (r *RegisterRepo) GetByID(ctx context.Context, id string) (*entity.Register, error) {
	var out *entity.Register
	err := r.db.read(ctx, func(st *state) error {
		if reg, ok := st.Registers[id]; ok {
			clone := *reg
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *RegisterRepo) Update(ctx context.Context, reg *entity.Register) error {
	return r.db.write(ctx, func(st *state) error {
		cur, ok := st.Registers[reg.ID]
		if !ok {
			return domain.ErrNotFound
		}
		clone := *reg
		clone.CreatedAt = cur.CreatedAt
		st.Registers[reg.ID] = &clone
		return nil
	})
}

func (r *RegisterRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Register, error) {
	var list []*entity.Register
	err := r.db.read(ctx, func(st *state) error {
		for _, reg := range st.Registers {
			if branchID == "" || reg.BranchID == branchID {
				clone := *reg
				list = append(list, &clone)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, err
}

func (r *RegisterRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.Registers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Registers, id)
		return nil
	})
}
