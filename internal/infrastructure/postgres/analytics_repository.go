package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para tablero y reportes.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// salesWhere filtro común: solo ventas completadas, rango [From, To).
func salesWhere(alias string, q repository.SalesQuery) *whereBuilder {
	w := &whereBuilder{}
	w.add(alias+"status = ?", entity.SaleStatusCompleted)
	if q.BranchID != "" {
		w.add(alias+"branch_id = ?", q.BranchID)
	}
	if q.CashierID != "" {
		w.add(alias+"cashier_id = ?", q.CashierID)
	}
	if !q.From.IsZero() {
		w.add(alias+"created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		w.add(alias+"created_at < ?", q.To)
	}
	return w
}

func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, q repository.SalesQuery) (decimal.Decimal, int, error) {
	w := salesWhere("", q)
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0), COUNT(*) FROM sales`+w.sql(), w.args...).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales metrics: %w", err)
	}
	return total, count, nil
}

func (r *AnalyticsRepo) GetSalesTimeline(ctx context.Context, q repository.SalesQuery) ([]repository.SalePoint, error) {
	w := salesWhere("", q)
	rows, err := r.q.Query(ctx, `
		SELECT created_at, total, branch_id, cashier_id, payment_method
		FROM sales`+w.sql()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("sales timeline: %w", err)
	}
	defer rows.Close()
	var points []repository.SalePoint
	for rows.Next() {
		var p repository.SalePoint
		if err := rows.Scan(&p.CreatedAt, &p.Total, &p.BranchID, &p.CashierID, &p.PaymentMethod); err != nil {
			return nil, fmt.Errorf("scan sale point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetTopProducts agrupa por producto los renglones de ventas completadas, de mayor a menor importe.
// Nombre y código salen de la copia guardada en el renglón.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, q repository.SalesQuery, limit int) ([]repository.TopProductResult, error) {
	w := salesWhere("s.", q)
	query := `
	SELECT
	    si.product_id,
	    MAX(si.product_name)  AS product_name,
	    MAX(si.product_code)  AS product_code,
	    SUM(si.quantity)      AS quantity,
	    SUM(si.subtotal)      AS revenue
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id` + w.sql() + `
	GROUP BY si.product_id
	ORDER BY revenue DESC, product_name` + w.page(limit, 0)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.ProductCode, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetCreditExposure vencido = pendiente con saldo y due_date anterior a asOf.
func (r *AnalyticsRepo) GetCreditExposure(ctx context.Context, asOf time.Time) (repository.CreditExposure, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(balance), 0),
	    COUNT(*) FILTER (WHERE balance > 0 AND due_date < $2),
	    COALESCE(SUM(balance) FILTER (WHERE balance > 0 AND due_date < $2), 0)
	FROM credits
	WHERE status = $1`
	var exp repository.CreditExposure
	err := r.q.QueryRow(ctx, query, entity.CreditStatusPending, asOf).
		Scan(&exp.PendingCount, &exp.PendingAmount, &exp.OverdueCount, &exp.OverdueAmount)
	if err != nil {
		return repository.CreditExposure{}, fmt.Errorf("credit exposure: %w", err)
	}
	return exp, nil
}

func (r *AnalyticsRepo) GetInventoryCounts(ctx context.Context, branchID string) (int, int, error) {
	var w whereBuilder
	w.conds = append(w.conds, "active")
	if branchID != "" {
		w.add("branch_id = ?", branchID)
	}
	var products, low int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE stock <= min_stock) FROM products`+w.sql(), w.args...,
	).Scan(&products, &low)
	if err != nil {
		return 0, 0, fmt.Errorf("inventory counts: %w", err)
	}
	return products, low, nil
}
