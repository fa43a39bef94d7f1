package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Períodos del reporte de ventas.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

const reportTopProducts = 10

var weekdays = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

var paymentLabels = map[string]string{
	"efectivo":      "Efectivo",
	"tarjeta":       "Tarjeta",
	"transferencia": "Transferencia",
	"credito":       "Crédito",
}

// ReportUseCase reporte de ventas completadas por período:
//   - daily: hoy, 24 barras por hora.
//   - weekly: últimos 7 días, una barra por día.
//   - monthly: últimos 30 días, 5 barras por semana (Semana 5 es la más reciente).
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	branchRepo    repository.BranchRepository
	userRepo      repository.UserRepository
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	analyticsRepo repository.AnalyticsRepository,
	branchRepo repository.BranchRepository,
	userRepo repository.UserRepository,
) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo, branchRepo: branchRepo, userRepo: userRepo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// SalesReport genera el reporte. Period vacío equivale a daily.
func (uc *ReportUseCase) SalesReport(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportDTO, error) {
	if req.Period == "" {
		req.Period = PeriodDaily
	}
	now := uc.now()
	from, to, chart, bucket, err := window(req.Period, now)
	if err != nil {
		return nil, err
	}
	q := repository.SalesQuery{BranchID: req.BranchID, CashierID: req.CashierID, From: from, To: to}

	type timelineResult struct {
		points []repository.SalePoint
		err    error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	tlCh := make(chan timelineResult, 1)
	topCh := make(chan topResult, 1)
	go func() {
		points, err := uc.analyticsRepo.GetSalesTimeline(ctx, q)
		tlCh <- timelineResult{points, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, q, reportTopProducts)
		topCh <- topResult{rows, err}
	}()
	tl := <-tlCh
	top := <-topCh
	if tl.err != nil {
		return nil, fmt.Errorf("reporte: ventas: %w", tl.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("reporte: top productos: %w", top.err)
	}

	total := decimal.Zero
	methods := newBreakdown()
	branches := newBreakdown()
	cashiers := newBreakdown()
	for _, m := range []string{"efectivo", "tarjeta", "transferencia", "credito"} {
		methods.ensure(m)
	}
	for _, p := range tl.points {
		total = total.Add(p.Total)
		if i := bucket(p.CreatedAt); i >= 0 && i < len(chart) {
			chart[i].Total = chart[i].Total.Add(p.Total)
			chart[i].Transactions++
		}
		methods.add(p.PaymentMethod, p.Total)
		branches.add(p.BranchID, p.Total)
		cashiers.add(p.CashierID, p.Total)
	}
	for i := range chart {
		chart[i].Total = chart[i].Total.Round(2)
	}

	avg := decimal.Zero
	if n := len(tl.points); n > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(n)), 2)
	}

	byBranch, err := branches.rows(func(id string) (string, error) {
		if id == "" {
			return "Sin sucursal", nil
		}
		b, err := uc.branchRepo.GetByID(ctx, id)
		if err != nil || b == nil {
			return "Sin sucursal", err
		}
		return b.Name, nil
	}, true)
	if err != nil {
		return nil, err
	}
	byCashier, err := cashiers.rows(func(id string) (string, error) {
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil || u == nil {
			return "Usuario desconocido", err
		}
		return u.Name, nil
	}, true)
	if err != nil {
		return nil, err
	}
	byMethod, _ := methods.rows(func(key string) (string, error) {
		if l, ok := paymentLabels[key]; ok {
			return l, nil
		}
		return key, nil
	}, false)

	return &dto.SalesReportDTO{
		Period:         req.Period,
		StartDate:      from.Format("2006-01-02"),
		EndDate:        to.Format("2006-01-02"),
		Total:          total.Round(2),
		Transactions:   len(tl.points),
		AverageTicket:  avg,
		Chart:          chart,
		TopProducts:    toTopProducts(top.rows),
		PaymentMethods: byMethod,
		ByBranch:       byBranch,
		ByCashier:      byCashier,
	}, nil
}

// window calcula el rango, las barras vacías y la función que ubica una venta en su barra.
func window(period string, now time.Time) (time.Time, time.Time, []dto.ChartPointDTO, func(time.Time) int, error) {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch period {
	case PeriodDaily:
		chart := make([]dto.ChartPointDTO, 24)
		for h := range chart {
			chart[h] = dto.ChartPointDTO{Label: fmt.Sprintf("%d:00", h), Total: decimal.Zero}
		}
		end := todayStart.Add(24*time.Hour - time.Nanosecond)
		return todayStart, end, chart, func(t time.Time) int { return t.In(loc).Hour() }, nil
	case PeriodWeekly:
		first := todayStart.AddDate(0, 0, -6)
		chart := make([]dto.ChartPointDTO, 7)
		for i := range chart {
			d := first.AddDate(0, 0, i)
			chart[i] = dto.ChartPointDTO{Label: fmt.Sprintf("%s %d", weekdays[d.Weekday()], d.Day()), Total: decimal.Zero}
		}
		return now.Add(-7 * 24 * time.Hour), now, chart, func(t time.Time) int {
			t = t.In(loc)
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
			return int(day.Sub(first).Hours() / 24)
		}, nil
	case PeriodMonthly:
		chart := make([]dto.ChartPointDTO, 5)
		for i := range chart {
			chart[i] = dto.ChartPointDTO{Label: fmt.Sprintf("Semana %d", i+1), Total: decimal.Zero}
		}
		return now.Add(-30 * 24 * time.Hour), now, chart, func(t time.Time) int {
			daysAgo := int(now.Sub(t).Hours() / 24)
			return 4 - daysAgo/7
		}, nil
	}
	return time.Time{}, time.Time{}, nil, nil, domain.ErrInvalidInput
}

type breakdown struct {
	order []string
	byKey map[string]*dto.BreakdownDTO
}

func newBreakdown() *breakdown {
	return &breakdown{byKey: map[string]*dto.BreakdownDTO{}}
}

func (b *breakdown) ensure(key string) *dto.BreakdownDTO {
	r, ok := b.byKey[key]
	if !ok {
		r = &dto.BreakdownDTO{Key: key, Total: decimal.Zero}
		b.byKey[key] = r
		b.order = append(b.order, key)
	}
	return r
}

func (b *breakdown) add(key string, amount decimal.Decimal) {
	r := b.ensure(key)
	r.Total = r.Total.Add(amount)
	r.Transactions++
}

// rows resuelve etiquetas y, si byTotal, ordena de mayor a menor importe.
func (b *breakdown) rows(label func(string) (string, error), byTotal bool) ([]dto.BreakdownDTO, error) {
	out := make([]dto.BreakdownDTO, 0, len(b.order))
	for _, key := range b.order {
		r := *b.byKey[key]
		l, err := label(key)
		if err != nil {
			return nil, err
		}
		r.Label = l
		r.Total = r.Total.Round(2)
		out = append(out, r)
	}
	if byTotal {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	}
	return out, nil
}
