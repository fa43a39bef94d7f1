package memory

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.PriceLabelRepository = (*PriceLabelRepo)(nil)
)

// CompanyRepo datos de la empresa en memoria.
type CompanyRepo struct {
	db session
}

func NewCompanyRepository(s *Store) *CompanyRepo {
	return &CompanyRepo{db: s.session()}
}

func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.read(ctx, func(st *state) error {
		if st.Company != nil {
			clone := *st.Company
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	return r.db.write(ctx, func(st *state) error {
		clone := *c
		st.Company = &clone
		return nil
	})
}

// PriceLabelRepo etiquetas de precio en memoria.
type PriceLabelRepo struct {
	db session
}

func NewPriceLabelRepository(s *Store) *PriceLabelRepo {
	return &PriceLabelRepo{db: s.session()}
}

func (r *PriceLabelRepo) Get(ctx context.Context) (*entity.PriceLabelConfig, error) {
	var out *entity.PriceLabelConfig
	err := r.db.read(ctx, func(st *state) error {
		if st.PriceLabels != nil {
			clone := *st.PriceLabels
			out = &clone
		}
		return nil
	})
	return out, err
}

func (r *PriceLabelRepo) Save(ctx context.Context, cfg *entity.PriceLabelConfig) error {
	return r.db.write(ctx, func(st *state) error {
		clone := *cfg
		st.PriceLabels = &clone
		return nil
	})
}
