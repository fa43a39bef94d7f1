package sales_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	branchID  = "b0000000-0000-0000-0000-000000000001"
	cashierID = "u0000000-0000-0000-0000-000000000001"
)

var cashier = entity.CashierContext{UserID: cashierID, Role: entity.RoleCashier, BranchID: branchID}

type fixture struct {
	store     *memory.Store
	products  *memory.ProductRepo
	clients   *memory.ClientRepo
	sales     *memory.SaleRepo
	credits   *memory.CreditRepo
	movements *memory.MovementRepo
	uc        *sales.CompleteSaleUseCase
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	f := &fixture{
		store:     st,
		products:  memory.NewProductRepository(st),
		clients:   memory.NewClientRepository(st),
		sales:     memory.NewSaleRepository(st),
		credits:   memory.NewCreditRepository(st),
		movements: memory.NewInventoryMovementRepository(st),
		now:       time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC),
	}
	company := memory.NewCompanyRepository(st)
	require.NoError(t, company.Save(context.Background(), &entity.Company{ID: "co", Name: "Tienda", TaxRate: decimal.NewFromInt(16)}))

	f.uc = sales.NewCompleteSaleUseCase(
		memory.NewTxRunner(st), company, memory.NewRegisterRepository(st), nil,
		sales.Config{DefaultTaxRate: decimal.NewFromInt(16), CreditTermDays: 30},
		logger.Nop(),
	).WithClock(func() time.Time { return f.now })
	return f
}

func (f *fixture) product(t *testing.T, id, price, stock string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:       id,
		Code:     "C-" + id,
		Name:     "Producto " + id,
		Price1:   decimal.RequireFromString(price),
		Price2:   decimal.RequireFromString(price).Sub(decimal.NewFromInt(1)),
		Cost:     decimal.NewFromInt(1),
		Stock:    decimal.RequireFromString(stock),
		BranchID: branchID,
		Active:   true,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) client(t *testing.T, id, limit, current string) *entity.Client {
	t.Helper()
	c := &entity.Client{
		ID:            id,
		Name:          "Cliente " + id,
		CreditLimit:   decimal.RequireFromString(limit),
		CurrentCredit: decimal.RequireFromString(current),
		Active:        true,
	}
	require.NoError(t, f.clients.Create(context.Background(), c))
	return c
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) allMovements(t *testing.T) []*entity.InventoryMovement {
	t.Helper()
	list, err := f.movements.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

func (f *fixture) allSales(t *testing.T) []*entity.Sale {
	t.Helper()
	list, err := f.sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	return list
}

func line(productID, qty string) sales.CartLine {
	return sales.CartLine{ProductID: productID, Quantity: decimal.RequireFromString(qty)}
}

func TestCompleteSale_TotalesConDescuentoEIVA(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "100", "10")

	sale, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:           []sales.CartLine{line("p1", "2")},
		PaymentMethod:   entity.PaymentCash,
		DiscountPercent: decimal.NewFromInt(10),
		TaxEnabled:      true,
	}, cashier)
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, sale.DiscountAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, sale.TaxAmount.Equal(decimal.RequireFromString("28.8")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("208.8")))
	assert.Equal(t, "V-000001", sale.Folio)
	assert.Equal(t, entity.DocumentTicket, sale.DocumentType)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, f.now, sale.CreatedAt)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Producto p1", sale.Items[0].ProductName)
	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(8)))
}

func TestCompleteSale_CreditoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "400", "10")
	f.client(t, "c1", "1000", "700")

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "1")},
		ClientID:      "c1",
		PaymentMethod: entity.PaymentCredit,
	}, cashier)

	var credErr *domain.InsufficientCreditError
	require.ErrorAs(t, err, &credErr)
	assert.True(t, credErr.Available.Equal(decimal.NewFromInt(300)))
	assert.ErrorIs(t, err, domain.ErrInsufficientCredit)

	// nada se escribió
	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(10)))
	assert.Empty(t, f.allSales(t))
	assert.Empty(t, f.allMovements(t))
	c, _ := f.clients.GetByID(context.Background(), "c1")
	assert.True(t, c.CurrentCredit.Equal(decimal.NewFromInt(700)))
}

func TestCompleteSale_VendeTodoElStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "10", "5")

	sale, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "5")},
		PaymentMethod: entity.PaymentCard,
	}, cashier)
	require.NoError(t, err)

	assert.True(t, f.stock(t, "p1").IsZero())
	movs := f.allMovements(t)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeExit, movs[0].Type)
	assert.Equal(t, entity.DirectionOut, movs[0].Direction)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, sale.ID, movs[0].ReferenceID)
	assert.Equal(t, "Venta "+sale.Folio, movs[0].Reason)
}

func TestCompleteSale_VentaACreditoAbreCredito(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "100", "3")
	f.client(t, "c1", "1000", "100")

	sale, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "2")},
		ClientID:      "c1",
		PaymentMethod: entity.PaymentCredit,
		TaxEnabled:    true,
	}, cashier)
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(232)))

	credits, err := f.credits.List(context.Background(), repository.CreditFilter{ClientID: "c1"})
	require.NoError(t, err)
	require.Len(t, credits, 1)
	cr := credits[0]
	assert.Equal(t, sale.ID, cr.SaleID)
	assert.True(t, cr.Amount.Equal(sale.Total))
	assert.True(t, cr.Balance.Equal(sale.Total))
	assert.Equal(t, entity.CreditStatusPending, cr.Status)
	assert.Equal(t, f.now.AddDate(0, 0, 30), cr.DueDate)

	c, _ := f.clients.GetByID(context.Background(), "c1")
	assert.True(t, c.CurrentCredit.Equal(decimal.NewFromInt(332)))
}

func TestCompleteSale_CreditoExactoAlLimite(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "300", "3")
	f.client(t, "c1", "1000", "700")

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "1")},
		ClientID:      "c1",
		PaymentMethod: entity.PaymentCredit,
	}, cashier)
	require.NoError(t, err)

	c, _ := f.clients.GetByID(context.Background(), "c1")
	assert.True(t, c.CurrentCredit.Equal(c.CreditLimit))
}

func TestCompleteSale_Rechazos(t *testing.T) {
	tests := []struct {
		name    string
		in      sales.CompleteSaleInput
		wantErr error
	}{
		{"carrito vacío", sales.CompleteSaleInput{PaymentMethod: entity.PaymentCash}, domain.ErrEmptyCart},
		{"crédito sin cliente", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "1")}, PaymentMethod: entity.PaymentCredit}, domain.ErrMissingClient},
		{"crédito con cliente inexistente", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "1")}, ClientID: "nadie", PaymentMethod: entity.PaymentCredit}, domain.ErrMissingClient},
		{"stock insuficiente", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "6")}, PaymentMethod: entity.PaymentCash}, domain.ErrInsufficientStock},
		{"producto inexistente", sales.CompleteSaleInput{Lines: []sales.CartLine{line("zz", "1")}, PaymentMethod: entity.PaymentCash}, domain.ErrInsufficientStock},
		{"cantidad cero", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "0")}, PaymentMethod: entity.PaymentCash}, domain.ErrInvalidInput},
		{"método desconocido", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "1")}, PaymentMethod: "vales"}, domain.ErrInvalidInput},
		{"descuento mayor a 100", sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "1")}, PaymentMethod: entity.PaymentCash, DiscountPercent: decimal.NewFromInt(101)}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.product(t, "p1", "10", "5")

			_, err := f.uc.CompleteSale(context.Background(), tt.in, cashier)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(5)))
			assert.Empty(t, f.allSales(t))
		})
	}
}

func TestCompleteSale_StockInsuficienteSumaRenglonesRepetidos(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "10", "5")

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "3"), line("p1", "3")},
		PaymentMethod: entity.PaymentCash,
	}, cashier)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.True(t, stockErr.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, stockErr.Requested.Equal(decimal.NewFromInt(6)))
}

// Un rechazo en el segundo producto no deja rastro del primero.
func TestCompleteSale_RechazoNoDejaEscriturasParciales(t *testing.T) {
	f := newFixture(t)
	f.product(t, "a", "10", "5")
	f.product(t, "b", "10", "1")

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("a", "2"), line("b", "2")},
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.stock(t, "a").Equal(decimal.NewFromInt(5)))
	assert.True(t, f.stock(t, "b").Equal(decimal.NewFromInt(1)))
	assert.Empty(t, f.allMovements(t))
}

func TestCompleteSale_ProductoInactivoNoSeVende(t *testing.T) {
	f := newFixture(t)
	f.product(t, "a", "10", "5")
	baja := f.product(t, "b", "10", "5")
	baja.Active = false
	require.NoError(t, f.products.Update(context.Background(), baja))

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("a", "1"), line("b", "1")},
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "b", stockErr.ProductID)
	assert.True(t, stockErr.Available.IsZero())

	assert.True(t, f.stock(t, "a").Equal(decimal.NewFromInt(5)))
	assert.True(t, f.stock(t, "b").Equal(decimal.NewFromInt(5)))
	assert.Empty(t, f.allSales(t))
	assert.Empty(t, f.allMovements(t))

	quote := sales.NewQueryUseCase(f.sales, f.products, memory.NewCompanyRepository(f.store), decimal.NewFromInt(16))
	_, err = quote.QuoteSale(context.Background(), sales.CompleteSaleInput{Lines: []sales.CartLine{line("b", "1")}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCompleteSale_NivelDePrecioYPrecioManual(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "50", "10")
	manual := decimal.RequireFromString("45.5")

	sale, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines: []sales.CartLine{
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), PriceTier: entity.PriceTier2},
			{ProductID: "p1", Quantity: decimal.NewFromInt(1), UnitPrice: &manual, Discount: decimal.RequireFromString("0.5")},
		},
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	require.NoError(t, err)

	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(49)))
	assert.Equal(t, entity.PriceTier2, sale.Items[0].PriceTier)
	assert.True(t, sale.Items[1].Subtotal.Equal(decimal.NewFromInt(45)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(94)))
	assert.True(t, sale.TaxRate.IsZero())
}

func TestCompleteSale_FoliosConsecutivosPorSucursal(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1", "100")
	other := entity.CashierContext{UserID: cashierID, BranchID: "b2"}

	in := sales.CompleteSaleInput{Lines: []sales.CartLine{line("p1", "1")}, PaymentMethod: entity.PaymentCash}
	s1, err := f.uc.CompleteSale(context.Background(), in, cashier)
	require.NoError(t, err)
	s2, err := f.uc.CompleteSale(context.Background(), in, cashier)
	require.NoError(t, err)
	s3, err := f.uc.CompleteSale(context.Background(), in, other)
	require.NoError(t, err)

	assert.Equal(t, "V-000001", s1.Folio)
	assert.Equal(t, "V-000002", s2.Folio)
	assert.Equal(t, "V-000001", s3.Folio)
}

type failingFolios struct{}

func (failingFolios) Next(context.Context, string) (int64, error) {
	return 0, errors.New("redis caído")
}

func TestCompleteSale_ErrorDeFolioRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "10", "5")
	st := f.store
	uc := sales.NewCompleteSaleUseCase(
		memory.NewTxRunner(st), memory.NewCompanyRepository(st), memory.NewRegisterRepository(st), failingFolios{},
		sales.Config{}, logger.Nop(),
	)

	_, err := uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "1")},
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	require.Error(t, err)
	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(5)))
}

func TestCompleteSale_SinCajeroNoAutoriza(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "10", "5")

	_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
		Lines:         []sales.CartLine{line("p1", "1")},
		PaymentMethod: entity.PaymentCash,
	}, entity.CashierContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Ventas concurrentes sobre el mismo producto nunca dejan stock negativo y
// stock final = inicial - suma vendida.
func TestCompleteSale_ConcurrenciaConservaStock(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "1", "20")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sold    = decimal.Zero
		refused int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qty := fmt.Sprintf("%d", 1+i%2)
			_, err := f.uc.CompleteSale(context.Background(), sales.CompleteSaleInput{
				Lines:         []sales.CartLine{line("p1", qty)},
				PaymentMethod: entity.PaymentCash,
			}, cashier)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				refused++
				return
			}
			sold = sold.Add(decimal.RequireFromString(qty))
		}(i)
	}
	wg.Wait()

	final := f.stock(t, "p1")
	assert.False(t, final.IsNegative())
	assert.True(t, decimal.NewFromInt(20).Sub(sold).Equal(final), "final %s vendido %s", final, sold)
	assert.Positive(t, refused)

	outs := decimal.Zero
	for _, m := range f.allMovements(t) {
		outs = outs.Add(m.Quantity)
	}
	assert.True(t, outs.Equal(sold))
}

func TestQuoteSale_NoEscribeNada(t *testing.T) {
	f := newFixture(t)
	f.product(t, "p1", "100", "1")
	quote := sales.NewQueryUseCase(f.sales, f.products, memory.NewCompanyRepository(f.store), decimal.NewFromInt(16))

	// la cotización no revisa stock: 2 unidades con 1 en existencia
	q, err := quote.QuoteSale(context.Background(), sales.CompleteSaleInput{
		Lines:           []sales.CartLine{line("p1", "2")},
		DiscountPercent: decimal.NewFromInt(10),
		TaxEnabled:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "208.8", q.Totals.Total.String())
	assert.True(t, q.TaxRate.Equal(decimal.NewFromInt(16)))
	require.Len(t, q.Items, 1)
	assert.Equal(t, "Producto p1", q.Items[0].ProductName)

	assert.True(t, f.stock(t, "p1").Equal(decimal.NewFromInt(1)))
	assert.Empty(t, f.allSales(t))
	assert.Empty(t, f.allMovements(t))

	_, err = quote.QuoteSale(context.Background(), sales.CompleteSaleInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	_, err = quote.QuoteSale(context.Background(), sales.CompleteSaleInput{Lines: []sales.CartLine{line("nope", "1")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
