package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesQuery rango y filtros para agregados de ventas completadas.
type SalesQuery struct {
	BranchID  string
	CashierID string
	From      time.Time
	To        time.Time
}

// SalePoint una venta reducida a lo que agrupan los reportes.
type SalePoint struct {
	CreatedAt     time.Time
	Total         decimal.Decimal
	BranchID      string
	CashierID     string
	PaymentMethod string
}

// TopProductResult producto más vendido en el período.
type TopProductResult struct {
	ProductID   string
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	Revenue     decimal.Decimal
}

// CreditExposure resumen de cuentas por cobrar.
type CreditExposure struct {
	PendingCount  int
	PendingAmount decimal.Decimal
	OverdueCount  int
	OverdueAmount decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para tablero y reportes.
// Solo considera ventas con estado completada.
type AnalyticsRepository interface {
	// GetSalesMetrics suma de totales y número de ventas en el rango.
	GetSalesMetrics(ctx context.Context, q SalesQuery) (total decimal.Decimal, count int, err error)

	// GetSalesTimeline devuelve una entrada por venta, ordenada por fecha.
	GetSalesTimeline(ctx context.Context, q SalesQuery) ([]SalePoint, error)

	// GetTopProducts productos con mayor importe vendido; limit acota el resultado.
	GetTopProducts(ctx context.Context, q SalesQuery, limit int) ([]TopProductResult, error)

	// GetCreditExposure créditos pendientes y vencidos a la fecha asOf.
	GetCreditExposure(ctx context.Context, asOf time.Time) (CreditExposure, error)

	// GetInventoryCounts total de productos activos y cuántos están en stock bajo.
	GetInventoryCounts(ctx context.Context, branchID string) (products, lowStock int, err error)
}
