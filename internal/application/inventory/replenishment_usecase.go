package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase lista de reposición de una sucursal.
type ReplenishmentUseCase struct {
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, analyticsRepo: analyticsRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// GenerateReplenishmentList devuelve los productos en o bajo su mínimo. El stock ideal es 1.5x
// el mínimo; se ordena por unidades vendidas en los últimos 30 días y luego por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, branchID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.productRepo.ListLowStock(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	end := uc.now()
	top, err := uc.analyticsRepo.GetTopProducts(ctx, repository.SalesQuery{
		BranchID: branchID,
		From:     end.AddDate(0, 0, -30),
		To:       end,
	}, 500)
	if err != nil {
		return nil, err
	}
	sold := make(map[string]decimal.Decimal, len(top))
	for _, t := range top {
		sold[t.ProductID] = t.Quantity
	}

	factor := decimal.RequireFromString("1.5")
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		qty := p.MinStock.Mul(factor).Sub(p.Stock)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:       p.ID,
			Code:            p.Code,
			ProductName:     p.Name,
			CurrentStock:    p.Stock,
			MinStock:        p.MinStock,
			SuggestedQty:    qty,
			EstimatedCost:   qty.Mul(p.Cost),
			UnitsSold30Days: sold[p.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.UnitsSold30Days.Equal(b.UnitsSold30Days) {
			return a.UnitsSold30Days.GreaterThan(b.UnitsSold30Days)
		}
		return a.SuggestedQty.GreaterThan(b.SuggestedQty)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
