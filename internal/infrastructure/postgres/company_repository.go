package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.PriceLabelRepository = (*PriceLabelRepo)(nil)
)

// CompanyRepo datos de la empresa. La tabla admite una sola fila (columna singleton).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para la empresa.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func (r *CompanyRepo) Get(ctx context.Context) (*entity.Company, error) {
	query := `
		SELECT id, name, rfc, address, phone, email, logo_ref, tax_rate, created_at, updated_at
		FROM company LIMIT 1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query).Scan(
		&c.ID, &c.Name, &c.RFC, &c.Address, &c.Phone, &c.Email, &c.LogoRef, &c.TaxRate,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Save inserta o reemplaza el registro único.
func (r *CompanyRepo) Save(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO company (id, name, rfc, address, phone, email, logo_ref, tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (singleton) DO UPDATE SET
			name = EXCLUDED.name, rfc = EXCLUDED.rfc, address = EXCLUDED.address,
			phone = EXCLUDED.phone, email = EXCLUDED.email, logo_ref = EXCLUDED.logo_ref,
			tax_rate = EXCLUDED.tax_rate, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.RFC, c.Address, c.Phone, c.Email, c.LogoRef, c.TaxRate,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}

// PriceLabelRepo etiquetas de niveles de precio (una fila).
type PriceLabelRepo struct {
	q Querier
}

func NewPriceLabelRepository(q Querier) *PriceLabelRepo {
	return &PriceLabelRepo{q: q}
}

func (r *PriceLabelRepo) Get(ctx context.Context) (*entity.PriceLabelConfig, error) {
	var c entity.PriceLabelConfig
	err := r.q.QueryRow(ctx, `SELECT price1, price2, price3, price4, updated_at FROM price_labels LIMIT 1`).
		Scan(&c.Price1, &c.Price2, &c.Price3, &c.Price4, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price labels: %w", err)
	}
	return &c, nil
}

func (r *PriceLabelRepo) Save(ctx context.Context, c *entity.PriceLabelConfig) error {
	query := `
		INSERT INTO price_labels (singleton, price1, price2, price3, price4, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5)
		ON CONFLICT (singleton) DO UPDATE SET
			price1 = EXCLUDED.price1, price2 = EXCLUDED.price2,
			price3 = EXCLUDED.price3, price4 = EXCLUDED.price4, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, c.Price1, c.Price2, c.Price3, c.Price4, c.UpdatedAt); err != nil {
		return fmt.Errorf("save price labels: %w", err)
	}
	return nil
}
