package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var (
	_ repository.BranchRepository   = (*BranchRepo)(nil)
	_ repository.RegisterRepository = (*RegisterRepo)(nil)
)

// BranchRepo sucursales sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, name, address, phone, active, created_at, updated_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx, `INSERT INTO branches (`+branchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Name, b.Address, b.Phone, b.Active, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	if !validID(id) {
		return nil, nil
	}
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE branches SET name = $2, address = $3, phone = $4, active = $5, updated_at = $6 WHERE id = $1`,
		b.ID, b.Name, b.Address, b.Phone, b.Active, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, `SELECT `+branchColumns+` FROM branches ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RegisterRepo cajas sobre PostgreSQL.
type RegisterRepo struct {
	q Querier
}

func NewRegisterRepository(q Querier) *RegisterRepo {
	return &RegisterRepo{q: q}
}

const registerColumns = `id, branch_id, name, active, created_at, updated_at`

func scanRegister(row pgx.Row) (*entity.Register, error) {
	var c entity.Register
	if err := row.Scan(&c.ID, &c.BranchID, &c.Name, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RegisterRepo) Create(ctx context.Context, c *entity.Register) error {
	_, err := r.q.Exec(ctx, `INSERT INTO registers (`+registerColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.BranchID, c.Name, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert register: %w", err)
	}
	return nil
}

func (r *RegisterRepo) GetByID(ctx context.Context, id string) (*entity.Register, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanRegister(r.q.QueryRow(ctx, `SELECT `+registerColumns+` FROM registers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get register: %w", err)
	}
	return c, nil
}

func (r *RegisterRepo) Update(ctx context.Context, c *entity.Register) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE registers SET branch_id = $2, name = $3, active = $4, updated_at = $5 WHERE id = $1`,
		c.ID, c.BranchID, c.Name, c.Active, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update register: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RegisterRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Register, error) {
	var w whereBuilder
	if branchID != "" {
		w.addID("branch_id", branchID)
	}
	rows, err := r.q.Query(ctx, `SELECT `+registerColumns+` FROM registers`+w.sql()+` ORDER BY created_at, name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list registers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Register
	for rows.Next() {
		c, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan register: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *RegisterRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM registers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete register: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
