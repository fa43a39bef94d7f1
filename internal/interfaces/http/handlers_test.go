package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/store"
	apphttp "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPI arma la API completa sobre el almacén en memoria con un producto,
// un cliente con crédito abierto y la empresa configurada con IVA 16.
func newAPI(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory, FolioBackend: config.FolioBackendStore}}
	st, err := store.Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(st.Close)

	now := time.Now()
	require.NoError(t, st.Company.Save(ctx, &entity.Company{ID: "co", Name: "Tienda", TaxRate: decimal.NewFromInt(16)}))
	require.NoError(t, st.Branches.Create(ctx, &entity.Branch{ID: testBranchID, Name: "Centro", Active: true}))
	require.NoError(t, st.Products.Create(ctx, &entity.Product{
		ID: "p1", Code: "CAF-500", Name: "Café 500g", Price1: decimal.NewFromInt(90),
		Stock: decimal.NewFromInt(5), Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, st.Clients.Create(ctx, &entity.Client{
		ID: "c1", Name: "Rosa", CreditLimit: decimal.NewFromInt(1000),
		CurrentCredit: decimal.NewFromInt(150), Active: true,
	}))
	require.NoError(t, st.Credits.Create(ctx, &entity.Credit{
		ID: "cr1", ClientID: "c1", SaleID: "s0", Amount: decimal.NewFromInt(150), Balance: decimal.NewFromInt(150),
		Status: entity.CreditStatusPending, DueDate: now.AddDate(0, 0, 30), CreatedAt: now,
	}))

	log := logger.Nop()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(st.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		CompleteSale:     sales.NewCompleteSaleUseCase(st.TxRunner, st.Company, st.Registers, st.Folios, sales.Config{DefaultTaxRate: decimal.NewFromInt(16), CreditTermDays: 30}, log),
		SaleQuery:        sales.NewQueryUseCase(st.Sales, st.Products, st.Company, decimal.NewFromInt(16)),
		Receipt:          receipt.NewUseCase(st.Sales, st.Company, st.Clients, st.Users, st.Branches, infrapdf.NewMarotoPDFGenerator()),
		ApplyPayment:     appcredit.NewApplyPaymentUseCase(st.TxRunner, log),
		CreditQuery:      appcredit.NewQueryUseCase(st.Credits, st.Payments, st.Clients),
		RegisterMovement: inventory.NewRegisterMovementUseCase(st.TxRunner, st.Movements, log),
		Replenishment:    inventory.NewReplenishmentUseCase(st.Products, st.Analytics),
		ProductUC:        usecase.NewProductUseCase(st.Products, st.Categories),
		CategoryUC:       usecase.NewCategoryUseCase(st.Categories, st.Products),
		ClientUC:         usecase.NewClientUseCase(st.Clients, st.Credits, st.Payments, st.Sales),
		BranchUC:         usecase.NewBranchUseCase(st.Branches, st.Registers),
		UserUC:           usecase.NewUserUseCase(st.Users),
		CompanyUC:        usecase.NewCompanyUseCase(st.Company, st.PriceLabels),
		DashboardUC:      appanalytics.NewDashboardUseCase(st.Analytics, st.Clients),
		ReportUC:         appanalytics.NewReportUseCase(st.Analytics, st.Branches, st.Users),
		JWTSecret:        testJWTSecret,
		Ping:             st.Ping,
	})
	return app, st
}

func send(t *testing.T, app *fiber.App, method, path, body, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSales_Cobro(t *testing.T) {
	app, st := newAPI(t)

	resp := send(t, app, http.MethodPost, "/api/sales",
		`{"items":[{"product_id":"p1","quantity":"2"}],"payment_method":"efectivo","tax_enabled":true}`, entity.RoleCashier)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "208.8", sale.Total.String())
	assert.Equal(t, testUserID, sale.CashierID)
	assert.Equal(t, testRegisterID, sale.RegisterID)
	assert.NotEmpty(t, sale.Folio)

	p, err := st.Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(3)))

	resp = send(t, app, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", "", entity.RoleCashier)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestSales_Rechazos(t *testing.T) {
	app, st := newAPI(t)
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"carrito vacío", `{"items":[],"payment_method":"efectivo"}`, http.StatusBadRequest, "EMPTY_CART"},
		{"stock insuficiente", `{"items":[{"product_id":"p1","quantity":"6"}],"payment_method":"efectivo"}`, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"crédito sin cliente", `{"items":[{"product_id":"p1","quantity":"1"}],"payment_method":"credito"}`, http.StatusBadRequest, "MISSING_CLIENT"},
		{"cuerpo inválido", `{"items":`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(t, app, http.MethodPost, "/api/sales", tc.body, entity.RoleCashier)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	p, err := st.Products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(5)), "los rechazos no tocan el stock")
}

func TestSales_SinToken(t *testing.T) {
	app, _ := newAPI(t)
	resp := send(t, app, http.MethodPost, "/api/sales", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCredits_Abonos(t *testing.T) {
	app, st := newAPI(t)
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"monto cero", `{"amount":"0","payment_method":"efectivo"}`, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"sobrepago", `{"amount":"200","payment_method":"efectivo"}`, http.StatusConflict, "OVERPAYMENT"},
		{"método crédito", `{"amount":"10","payment_method":"credito"}`, http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(t, app, http.MethodPost, "/api/credits/cr1/payments", tc.body, entity.RoleCashier)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	resp := send(t, app, http.MethodPost, "/api/credits/nope/payments", `{"amount":"10","payment_method":"efectivo"}`, entity.RoleCashier)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/credits/cr1/payments", `{"amount":"150","payment_method":"tarjeta"}`, entity.RoleCashier)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ctx := context.Background()
	cr, err := st.Credits.GetByID(ctx, "cr1")
	require.NoError(t, err)
	assert.Equal(t, entity.CreditStatusPaid, cr.Status)
	c, err := st.Clients.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentCredit.IsZero())

	resp = send(t, app, http.MethodPost, "/api/credits/cr1/payments", `{"amount":"1","payment_method":"efectivo"}`, entity.RoleCashier)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestReports_SoloGerencia(t *testing.T) {
	app, _ := newAPI(t)

	resp := send(t, app, http.MethodGet, "/api/reports/sales?period=daily", "", entity.RoleCashier)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/api/reports/sales?period=daily", "", entity.RoleManager)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app, _ := newAPI(t)
	resp := send(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := fiber.New()
	apphttp.Router(down, apphttp.RouterDeps{
		JWTSecret: testJWTSecret,
		Ping:      func(context.Context) error { return errors.New("sin conexión") },
	})
	resp = send(t, down, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
