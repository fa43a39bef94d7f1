package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TodaySales          decimal.Decimal `json:"today_sales"`
	TodayTransactions   int             `json:"today_transactions"`
	MonthlySales        decimal.Decimal `json:"monthly_sales"`
	MonthlyTransactions int             `json:"monthly_transactions"`
	TotalSalesCount     int             `json:"total_sales_count"`
	ProductCount        int             `json:"product_count"`
	LowStockCount       int             `json:"low_stock_count"`
	ClientCount         int             `json:"client_count"`
	PendingCredits      int             `json:"pending_credits"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	OverdueCredits      int             `json:"overdue_credits"`
	TopProducts         []TopProductDTO `json:"top_products"`
	DateLabel           string          `json:"date_label"` // ej: "octubre 2026"
}

// TopProductDTO producto más vendido del período.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	Period    string `query:"period" validate:"omitempty,oneof=daily weekly monthly"`
	BranchID  string `query:"branch_id"`
	CashierID string `query:"cashier_id"`
}

// ChartPointDTO barra de la gráfica de ventas.
type ChartPointDTO struct {
	Label        string          `json:"label"`
	Total        decimal.Decimal `json:"total"`
	Transactions int             `json:"transactions"`
}

// BreakdownDTO total agrupado por método de pago, sucursal o cajero.
type BreakdownDTO struct {
	Key          string          `json:"key"`
	Label        string          `json:"label"`
	Total        decimal.Decimal `json:"total"`
	Transactions int             `json:"transactions"`
}

// SalesReportDTO reporte de ventas por período.
type SalesReportDTO struct {
	Period         string          `json:"period"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Total          decimal.Decimal `json:"total"`
	Transactions   int             `json:"transactions"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	Chart          []ChartPointDTO `json:"chart"`
	TopProducts    []TopProductDTO `json:"top_products"`
	PaymentMethods []BreakdownDTO  `json:"payment_methods"`
	ByBranch       []BreakdownDTO  `json:"by_branch"`
	ByCashier      []BreakdownDTO  `json:"by_cashier"`
}
