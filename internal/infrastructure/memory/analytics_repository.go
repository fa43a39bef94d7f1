package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados de solo lectura sobre el estado en memoria.
type AnalyticsRepo struct {
	db session
}

func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{db: s.session()}
}

func (r *AnalyticsRepo) completedSales(ctx context.Context, q repository.SalesQuery, fn func(s *entity.Sale)) error {
	from, to := q.From, q.To
	f := repository.SaleFilter{
		BranchID:  q.BranchID,
		CashierID: q.CashierID,
		Status:    entity.SaleStatusCompleted,
		From:      &from,
		To:        &to,
	}
	return r.db.read(ctx, func(st *state) error {
		for _, s := range st.Sales {
			if matchSale(s, f) {
				fn(s)
			}
		}
		return nil
	})
}

func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, q repository.SalesQuery) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	err := r.completedSales(ctx, q, func(s *entity.Sale) {
		total = total.Add(s.Total)
		count++
	})
	return total, count, err
}

func (r *AnalyticsRepo) GetSalesTimeline(ctx context.Context, q repository.SalesQuery) ([]repository.SalePoint, error) {
	var points []repository.SalePoint
	err := r.completedSales(ctx, q, func(s *entity.Sale) {
		points = append(points, repository.SalePoint{
			CreatedAt:     s.CreatedAt,
			Total:         s.Total,
			BranchID:      s.BranchID,
			CashierID:     s.CashierID,
			PaymentMethod: string(s.PaymentMethod),
		})
	})
	sort.Slice(points, func(i, j int) bool { return points[i].CreatedAt.Before(points[j].CreatedAt) })
	return points, err
}

func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, q repository.SalesQuery, limit int) ([]repository.TopProductResult, error) {
	byProduct := map[string]*repository.TopProductResult{}
	err := r.completedSales(ctx, q, func(s *entity.Sale) {
		for _, it := range s.Items {
			row, ok := byProduct[it.ProductID]
			if !ok {
				row = &repository.TopProductResult{
					ProductID:   it.ProductID,
					ProductName: it.ProductName,
					ProductCode: it.ProductCode,
				}
				byProduct[it.ProductID] = row
			}
			row.Quantity = row.Quantity.Add(it.Quantity)
			row.Revenue = row.Revenue.Add(it.Subtotal)
		}
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.TopProductResult, 0, len(byProduct))
	for _, row := range byProduct {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ProductName < out[j].ProductName
	})
	return paginate(out, limit, 0), nil
}

func (r *AnalyticsRepo) GetCreditExposure(ctx context.Context, asOf time.Time) (repository.CreditExposure, error) {
	exp := repository.CreditExposure{PendingAmount: decimal.Zero, OverdueAmount: decimal.Zero}
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.Credits {
			if c.Status != entity.CreditStatusPending {
				continue
			}
			exp.PendingCount++
			exp.PendingAmount = exp.PendingAmount.Add(c.Balance)
			if credit.IsOverdue(c, asOf) {
				exp.OverdueCount++
				exp.OverdueAmount = exp.OverdueAmount.Add(c.Balance)
			}
		}
		return nil
	})
	return exp, err
}

func (r *AnalyticsRepo) GetInventoryCounts(ctx context.Context, branchID string) (int, int, error) {
	products, low := 0, 0
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.Products {
			if !p.Active || (branchID != "" && p.BranchID != branchID) {
				continue
			}
			products++
			if p.IsLowStock() {
				low++
			}
		}
		return nil
	})
	return products, low, err
}
