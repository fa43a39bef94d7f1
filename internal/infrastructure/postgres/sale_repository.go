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
	_ repository.SaleRepository = (*SaleRepo)(nil)
	_ repository.FolioSequence  = (*FolioRepo)(nil)
)

// SaleRepo ventas y sus renglones (tabla sale_items).
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, folio, client_id, cashier_id, branch_id, register_id, subtotal, discount_rate,
	discount_amount, tax_rate, tax_amount, total, payment_method, document_type, status, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var method, docType string
	if err := row.Scan(
		&s.ID, &s.Folio, &s.ClientID, &s.CashierID, &s.BranchID, &s.RegisterID,
		&s.Subtotal, &s.DiscountRate, &s.DiscountAmount, &s.TaxRate, &s.TaxAmount, &s.Total,
		&method, &docType, &s.Status, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.PaymentMethod = entity.PaymentMethod(method)
	s.DocumentType = entity.DocumentType(docType)
	return &s, nil
}

// Create inserta la venta y sus renglones. Debe llamarse dentro de la tx de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.Folio, s.ClientID, s.CashierID, s.BranchID, s.RegisterID,
		s.Subtotal, s.DiscountRate, s.DiscountAmount, s.TaxRate, s.TaxAmount, s.Total,
		string(s.PaymentMethod), string(s.DocumentType), s.Status, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, product_code, price_tier,
				quantity, unit_price, discount, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			s.ID, i+1, it.ProductID, it.ProductName, it.ProductCode, string(it.PriceTier),
			it.Quantity, it.UnitPrice, it.Discount, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ordena de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var w whereBuilder
	if f.BranchID != "" {
		w.add("branch_id = ?", f.BranchID)
	}
	if f.CashierID != "" {
		w.add("cashier_id = ?", f.CashierID)
	}
	if f.ClientID != "" {
		w.add("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("created_at < ?", *f.To)
	}
	query := `SELECT ` + saleColumns + ` FROM sales` + w.sql() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems completa Items de todas las ventas con una sola consulta.
func (r *SaleRepo) loadItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, product_id, product_name, product_code, price_tier, quantity, unit_price, discount, subtotal
		FROM sale_items WHERE sale_id = ANY($1::uuid[]) ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var saleID, tier string
		var it entity.SaleItem
		if err := rows.Scan(&saleID, &it.ProductID, &it.ProductName, &it.ProductCode, &tier,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Subtotal); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		it.PriceTier = entity.PriceTier(tier)
		if s := byID[saleID]; s != nil {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

// FolioRepo consecutivo por sucursal. El upsert toma el lock de la fila hasta el fin de la tx.
type FolioRepo struct {
	q Querier
}

func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

func (r *FolioRepo) Next(ctx context.Context, branchID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO folio_sequences (branch_id, last_value) VALUES ($1, 1)
		ON CONFLICT (branch_id) DO UPDATE SET last_value = folio_sequences.last_value + 1
		RETURNING last_value`, branchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next folio: %w", err)
	}
	return n, nil
}
