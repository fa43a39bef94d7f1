package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cashier = entity.CashierContext{UserID: "u1", Role: entity.RoleManager, BranchID: "b1"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newProduct(t *testing.T, repo *memory.ProductRepo, id, stock, cost, minStock string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Product{
		ID: id, Code: "C" + id, Name: "Producto " + id, BranchID: "b1", Active: true,
		Price1: dec("10"), Stock: dec(stock), Cost: dec(cost), MinStock: dec(minStock),
	}))
}

func setup(t *testing.T) (*inventory.RegisterMovementUseCase, *memory.ProductRepo, *memory.MovementRepo) {
	t.Helper()
	st := memory.NewStore()
	products := memory.NewProductRepository(st)
	movements := memory.NewInventoryMovementRepository(st)
	uc := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(st), movements, logger.Nop())
	return uc, products, movements
}

func TestRegisterMovement_EntradaRecalculaCosto(t *testing.T) {
	uc, products, _ := setup(t)
	newProduct(t, products, "p1", "10", "20", "2")
	cost := dec("30")

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  dec("10"),
		UnitCost:  &cost,
		Reason:    "Compra proveedor",
	}, cashier)
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionIn, mov.Direction)
	assert.Equal(t, "u1", mov.CashierID)
	assert.Equal(t, "b1", mov.BranchID)

	p, _ := products.GetByID(context.Background(), "p1")
	assert.True(t, p.Stock.Equal(dec("20")))
	assert.True(t, p.Cost.Equal(dec("25")))
}

func TestRegisterMovement_AjusteSalida(t *testing.T) {
	uc, products, movements := setup(t)
	newProduct(t, products, "p1", "4", "5", "0")

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeAdjustment, Direction: entity.DirectionOut, Quantity: dec("1.5"), Reason: "Merma",
	}, cashier)
	require.NoError(t, err)

	p, _ := products.GetByID(context.Background(), "p1")
	assert.True(t, p.Stock.Equal(dec("2.5")))
	assert.True(t, p.Cost.Equal(dec("5")), "un ajuste no cambia el costo")

	list, err := uc.ListMovements(context.Background(), repository.MovementFilter{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].SignedQuantity().Equal(dec("-1.5")))

	all, _ := movements.List(context.Background(), repository.MovementFilter{Type: entity.MovementTypeEntry})
	assert.Empty(t, all)
}

func TestRegisterMovement_AjusteNoDejaStockNegativo(t *testing.T) {
	uc, products, movements := setup(t)
	newProduct(t, products, "p1", "2", "5", "0")

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeAdjustment, Direction: entity.DirectionOut, Quantity: dec("3"),
	}, cashier)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := products.GetByID(context.Background(), "p1")
	assert.True(t, p.Stock.Equal(dec("2")))
	list, _ := movements.List(context.Background(), repository.MovementFilter{})
	assert.Empty(t, list)
}

func TestRegisterMovement_EntradasInvalidas(t *testing.T) {
	negative := dec("-1")
	tests := []struct {
		name    string
		in      inventory.MovementInput
		wantErr error
	}{
		{"salida manual", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeExit, Quantity: dec("1")}, domain.ErrInvalidInput},
		{"ajuste sin sentido", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: dec("1")}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: dec("0")}, domain.ErrInvalidInput},
		{"costo negativo", inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: dec("1"), UnitCost: &negative}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.MovementInput{ProductID: "zz", Type: entity.MovementTypeEntry, Quantity: dec("1")}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, products, _ := setup(t)
			newProduct(t, products, "p1", "2", "5", "0")
			_, err := uc.RegisterMovement(context.Background(), tt.in, cashier)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	products := memory.NewProductRepository(st)
	saleRepo := memory.NewSaleRepository(st)
	now := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)

	newProduct(t, products, "a", "1", "10", "10") // déficit 14, sin ventas
	newProduct(t, products, "b", "5", "4", "6")   // déficit 4, vendió 12
	newProduct(t, products, "c", "50", "1", "10") // no está bajo
	newProduct(t, products, "d", "10", "2", "10") // justo en el mínimo: déficit 5

	require.NoError(t, saleRepo.Create(ctx, &entity.Sale{
		ID: "s1", Folio: "V-000001", BranchID: "b1", Status: entity.SaleStatusCompleted,
		Total: dec("48"), CreatedAt: now.AddDate(0, 0, -3),
		Items: []entity.SaleItem{{ProductID: "b", ProductName: "Producto b", Quantity: dec("12"), UnitPrice: dec("4"), Subtotal: dec("48")}},
	}))

	uc := inventory.NewReplenishmentUseCase(products, memory.NewAnalyticsRepository(st))
	list, err := uc.WithClock(func() time.Time { return now }).GenerateReplenishmentList(ctx, "b1")
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].UnitsSold30Days.Equal(dec("12")))
	assert.True(t, list[0].SuggestedQty.Equal(dec("4")))
	assert.True(t, list[0].EstimatedCost.Equal(dec("16")))

	assert.Equal(t, "a", list[1].ProductID)
	assert.True(t, list[1].SuggestedQty.Equal(dec("14")))
	assert.Equal(t, "d", list[2].ProductID)
	assert.Equal(t, 3, list[2].Priority)
}

func TestGenerateReplenishmentList_SinProductosBajos(t *testing.T) {
	st := memory.NewStore()
	products := memory.NewProductRepository(st)
	newProduct(t, products, "a", "100", "1", "5")

	uc := inventory.NewReplenishmentUseCase(products, memory.NewAnalyticsRepository(st))
	list, err := uc.GenerateReplenishmentList(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
