package memory

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo bitácora de inventario en memoria (orden de inserción).
type MovementRepo struct {
	db session
}

func NewInventoryMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{db: s.session()}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	return r.db.write(ctx, func(st *state) error {
		clone := *m
		st.Movements = append(st.Movements, &clone)
		return nil
	})
}

// List devuelve del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	err := r.db.read(ctx, func(st *state) error {
		for i := len(st.Movements) - 1; i >= 0; i-- {
			m := st.Movements[i]
			switch {
			case f.ProductID != "" && m.ProductID != f.ProductID:
				continue
			case f.BranchID != "" && m.BranchID != f.BranchID:
				continue
			case f.Type != "" && m.Type != f.Type:
				continue
			case f.From != nil && m.CreatedAt.Before(*f.From):
				continue
			case f.To != nil && !m.CreatedAt.Before(*f.To):
				continue
			}
			clone := *m
			list = append(list, &clone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paginate(list, f.Limit, f.Offset), nil
}
