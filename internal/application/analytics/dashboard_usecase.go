// Package analytics contiene los casos de uso del tablero y de los reportes de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopProducts = 5

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el conteo de clientes.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clientRepo    repository.ClientRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, clientRepo repository.ClientRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, clientRepo: clientRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO. branchID vacío considera todas las sucursales.
//
// Seis consultas independientes en paralelo:
//  1. ventas de hoy
//  2. ventas del mes
//  3. ventas históricas (conteo)
//  4. top productos del mes
//  5. inventario (productos y stock bajo)
//  6. créditos pendientes y vencidos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, branchID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type metricsResult struct {
		total decimal.Decimal
		count int
		err   error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type inventoryResult struct {
		products, low int
		err           error
	}
	type creditResult struct {
		exp repository.CreditExposure
		err error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	allCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	invCh := make(chan inventoryResult, 1)
	credCh := make(chan creditResult, 1)

	metrics := func(from, to time.Time, ch chan<- metricsResult) {
		total, count, err := uc.analyticsRepo.GetSalesMetrics(ctx, repository.SalesQuery{BranchID: branchID, From: from, To: to})
		ch <- metricsResult{total, count, err}
	}
	go metrics(todayStart, todayEnd, todayCh)
	go metrics(monthStart, todayEnd, monthCh)
	go metrics(time.Time{}, todayEnd, allCh)
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, repository.SalesQuery{BranchID: branchID, From: monthStart, To: todayEnd}, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		products, low, err := uc.analyticsRepo.GetInventoryCounts(ctx, branchID)
		invCh <- inventoryResult{products, low, err}
	}()
	go func() {
		exp, err := uc.analyticsRepo.GetCreditExposure(ctx, now)
		credCh <- creditResult{exp, err}
	}()

	today := <-todayCh
	month := <-monthCh
	all := <-allCh
	top := <-topCh
	inv := <-invCh
	cred := <-credCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if all.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", all.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	if cred.err != nil {
		return nil, fmt.Errorf("dashboard: créditos: %w", cred.err)
	}

	clients, err := uc.clientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", err)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:          today.total.Round(2),
		TodayTransactions:   today.count,
		MonthlySales:        month.total.Round(2),
		MonthlyTransactions: month.count,
		TotalSalesCount:     all.count,
		ProductCount:        inv.products,
		LowStockCount:       inv.low,
		ClientCount:         clients,
		PendingCredits:      cred.exp.PendingCount,
		PendingAmount:       cred.exp.PendingAmount.Round(2),
		OverdueCredits:      cred.exp.OverdueCount,
		TopProducts:         toTopProducts(top.rows),
		DateLabel:           monthLabel(now),
	}, nil
}

func toTopProducts(rows []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:    r.ProductID,
			Code:         r.ProductCode,
			ProductName:  r.ProductName,
			QuantitySold: r.Quantity,
			Revenue:      r.Revenue.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "octubre 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
