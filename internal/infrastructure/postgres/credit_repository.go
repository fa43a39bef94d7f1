package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.CreditRepository  = (*CreditRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

// CreditRepo cuentas por cobrar sobre PostgreSQL.
type CreditRepo struct {
	q Querier
}

func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

const creditColumns = `id, client_id, sale_id, amount, balance, status, due_date, created_at, updated_at`

func scanCredit(row pgx.Row) (*entity.Credit, error) {
	var c entity.Credit
	if err := row.Scan(&c.ID, &c.ClientID, &c.SaleID, &c.Amount, &c.Balance, &c.Status,
		&c.DueDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreditRepo) Create(ctx context.Context, c *entity.Credit) error {
	_, err := r.q.Exec(ctx, `INSERT INTO credits (`+creditColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.ClientID, c.SaleID, c.Amount, c.Balance, c.Status, c.DueDate, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

func (r *CreditRepo) GetByID(ctx context.Context, id string) (*entity.Credit, error) {
	return r.get(ctx, `SELECT `+creditColumns+` FROM credits WHERE id = $1`, id)
}

func (r *CreditRepo) GetForUpdate(ctx context.Context, id string) (*entity.Credit, error) {
	return r.get(ctx, `SELECT `+creditColumns+` FROM credits WHERE id = $1 FOR UPDATE`, id)
}

func (r *CreditRepo) get(ctx context.Context, query, id string) (*entity.Credit, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCredit(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit: %w", err)
	}
	return c, nil
}

// UpdateBalance el CHECK (balance BETWEEN 0 AND amount) rechaza estados imposibles.
func (r *CreditRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE credits SET balance = $2, status = $3, updated_at = $4 WHERE id = $1`,
		id, balance, status, time.Now())
	if err != nil {
		if isCheckViolation(err) {
			return &domain.IntegrityError{Entity: "crédito", ID: id, Detail: "saldo fuera de rango"}
		}
		return fmt.Errorf("update credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena del más reciente al más antiguo.
func (r *CreditRepo) List(ctx context.Context, f repository.CreditFilter) ([]*entity.Credit, error) {
	var w whereBuilder
	if f.ClientID != "" {
		w.addID("client_id", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + creditColumns + ` FROM credits` + w.sql() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Credit
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CreditRepo) CountPendingByClient(ctx context.Context, clientID string) (int, error) {
	if !validID(clientID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM credits WHERE client_id = $1 AND status = $2`,
		clientID, entity.CreditStatusPending).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count credits: %w", err)
	}
	return n, nil
}

// PaymentRepo abonos sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, credit_id, amount, payment_method, cashier_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.CreditID, p.Amount, string(p.PaymentMethod), p.CashierID, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) ListByCredit(ctx context.Context, creditID string) ([]*entity.Payment, error) {
	if !validID(creditID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, credit_id, amount, payment_method, cashier_id, created_at
		FROM payments WHERE credit_id = $1 ORDER BY created_at`, creditID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.CreditID, &p.Amount, &method, &p.CashierID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		p.PaymentMethod = entity.PaymentMethod(method)
		list = append(list, &p)
	}
	return list, rows.Err()
}
