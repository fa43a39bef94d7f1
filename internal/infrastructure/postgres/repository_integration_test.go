//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

func setupPostgresContainer(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("puntoventa_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return pool, cleanup
}

func seedProduct(t *testing.T, repo *ProductRepo, stock string) *entity.Product {
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Code:      "P-" + uuid.New().String()[:6],
		Name:      "Refresco 600ml",
		Price1:    decimal.NewFromInt(90),
		Price2:    decimal.NewFromInt(85),
		Price3:    decimal.NewFromInt(80),
		Price4:    decimal.NewFromInt(75),
		Cost:      decimal.NewFromInt(50),
		Stock:     decimal.RequireFromString(stock),
		MinStock:  decimal.NewFromInt(2),
		BranchID:  "branch-1",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestRepository_ProductCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool)
	p := seedProduct(t, repo, "10")

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price1.Equal(p.Price1))
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(10)))

	got.Name = "Refresco 1L"
	got.Stock = decimal.NewFromInt(999)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refresco 1L", again.Name)
	assert.True(t, again.Stock.Equal(decimal.NewFromInt(10)), "Update no debe tocar el stock")

	list, err := repo.List(ctx, repository.ProductFilter{Search: "refresco"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	missing, err := repo.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.UpdateStock(ctx, p.ID, decimal.NewFromInt(-1))
	var integrity *domain.IntegrityError
	assert.True(t, errors.As(err, &integrity))
}

func TestRepository_FolioSequencePerBranch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	folios := NewFolioRepository(pool)
	for want := int64(1); want <= 3; want++ {
		n, err := folios.Next(ctx, "branch-1")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := folios.Next(ctx, "branch-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTxRunner_CreditSaleAndPayment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	products := NewProductRepository(pool)
	clients := NewClientRepository(pool)
	p := seedProduct(t, products, "5")

	now := time.Now().UTC()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        "Abarrotes Lupita",
		CreditLimit: decimal.NewFromInt(1000),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, clients.Create(ctx, client))

	runner := NewTxRunner(pool)
	saleUC := sales.NewCompleteSaleUseCase(runner, NewCompanyRepository(pool), NewRegisterRepository(pool), nil,
		sales.Config{DefaultTaxRate: decimal.NewFromInt(16)}, logger.Nop())
	cashier := entity.CashierContext{UserID: "u-1", Role: entity.RoleCashier, BranchID: "branch-1"}

	sale, err := saleUC.CompleteSale(ctx, sales.CompleteSaleInput{
		Lines:         []sales.CartLine{{ProductID: p.ID, Quantity: decimal.NewFromInt(2), PriceTier: entity.PriceTier1}},
		ClientID:      client.ID,
		PaymentMethod: entity.PaymentCredit,
		TaxEnabled:    true,
	}, cashier)
	require.NoError(t, err)
	assert.Equal(t, "V-000001", sale.Folio)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("208.8")))

	stored, err := NewSaleRepository(pool).GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)

	after, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, after.Stock.Equal(decimal.NewFromInt(3)))

	credits, err := NewCreditRepository(pool).List(ctx, repository.CreditFilter{ClientID: client.ID})
	require.NoError(t, err)
	require.Len(t, credits, 1)

	payUC := appcredit.NewApplyPaymentUseCase(runner, logger.Nop())
	_, err = payUC.ApplyPayment(ctx, appcredit.ApplyPaymentInput{
		CreditID:      credits[0].ID,
		Amount:        decimal.RequireFromString("208.8"),
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	require.NoError(t, err)

	paid, err := NewCreditRepository(pool).GetByID(ctx, credits[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditStatusPaid, paid.Status)
	assert.True(t, paid.Balance.IsZero())

	c, err := clients.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, c.CurrentCredit.IsZero())
}

func TestTxRunner_RollbackOnInsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	products := NewProductRepository(pool)
	a := seedProduct(t, products, "5")
	b := seedProduct(t, products, "1")

	saleUC := sales.NewCompleteSaleUseCase(NewTxRunner(pool), NewCompanyRepository(pool), NewRegisterRepository(pool), nil,
		sales.Config{}, logger.Nop())
	_, err := saleUC.CompleteSale(ctx, sales.CompleteSaleInput{
		Lines: []sales.CartLine{
			{ProductID: a.ID, Quantity: decimal.NewFromInt(2)},
			{ProductID: b.ID, Quantity: decimal.NewFromInt(3)},
		},
		PaymentMethod: entity.PaymentCash,
	}, entity.CashierContext{UserID: "u-1", BranchID: "branch-1"})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err := products.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, after.Stock.Equal(decimal.NewFromInt(5)))

	movs, err := NewInventoryMovementRepository(pool).List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_IDsMalFormadosComoNoEncontrados(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	products := NewProductRepository(pool)
	p := seedProduct(t, products, "5")

	runner := NewTxRunner(pool)
	saleUC := sales.NewCompleteSaleUseCase(runner, NewCompanyRepository(pool), NewRegisterRepository(pool), nil, sales.Config{}, logger.Nop())
	cashier := entity.CashierContext{UserID: "u-1", Role: entity.RoleCashier, BranchID: "branch-1"}

	_, err := saleUC.CompleteSale(ctx, sales.CompleteSaleInput{
		Lines:         []sales.CartLine{{ProductID: "no-existe", Quantity: decimal.NewFromInt(1)}},
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "got %v", err)
	assert.Equal(t, "no-existe", stockErr.ProductID)

	_, err = saleUC.CompleteSale(ctx, sales.CompleteSaleInput{
		Lines:         []sales.CartLine{{ProductID: p.ID, Quantity: decimal.NewFromInt(1)}},
		ClientID:      "xyz",
		PaymentMethod: entity.PaymentCredit,
	}, cashier)
	require.ErrorIs(t, err, domain.ErrMissingClient)

	payUC := appcredit.NewApplyPaymentUseCase(runner, logger.Nop())
	_, err = payUC.ApplyPayment(ctx, appcredit.ApplyPaymentInput{
		CreditID:      "no-existe",
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: entity.PaymentCash,
	}, cashier)
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.ErrorIs(t, products.Delete(ctx, "abc"), domain.ErrNotFound)

	credits, err := NewCreditRepository(pool).List(ctx, repository.CreditFilter{ClientID: "xyz"})
	require.NoError(t, err)
	assert.Empty(t, credits)

	after, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, after.Stock.Equal(decimal.NewFromInt(5)))
}
