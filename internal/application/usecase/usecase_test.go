package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type repos struct {
	store      *memory.Store
	products   *memory.ProductRepo
	categories *memory.CategoryRepo
	branches   *memory.BranchRepo
	registers  *memory.RegisterRepo
	clients    *memory.ClientRepo
	credits    *memory.CreditRepo
	payments   *memory.PaymentRepo
	sales      *memory.SaleRepo
	users      *memory.UserRepo
	company    *memory.CompanyRepo
	labels     *memory.PriceLabelRepo
}

func newRepos() *repos {
	st := memory.NewStore()
	return &repos{
		store:      st,
		products:   memory.NewProductRepository(st),
		categories: memory.NewCategoryRepository(st),
		branches:   memory.NewBranchRepository(st),
		registers:  memory.NewRegisterRepository(st),
		clients:    memory.NewClientRepository(st),
		credits:    memory.NewCreditRepository(st),
		payments:   memory.NewPaymentRepository(st),
		sales:      memory.NewSaleRepository(st),
		users:      memory.NewUserRepository(st),
		company:    memory.NewCompanyRepository(st),
		labels:     memory.NewPriceLabelRepository(st),
	}
}

func (r *repos) bootstrap() *usecase.BootstrapUseCase {
	return usecase.NewBootstrapUseCase(r.company, r.labels, r.branches, r.registers, r.categories, r.users)
}

func TestBootstrap_SiembraUnaSolaVez(t *testing.T) {
	r := newRepos()
	ctx := context.Background()

	res, err := r.bootstrap().Run(ctx, usecase.BootstrapInput{AdminPassword: "secreto123"})
	require.NoError(t, err)
	assert.True(t, res.Seeded)

	co, err := r.company.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, co)
	assert.True(t, co.TaxRate.Equal(decimal.NewFromInt(16)))

	regs, err := r.registers.ListByBranch(ctx, res.BranchID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Caja 1", regs[0].Name)

	cats, err := r.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	labels, err := r.labels.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, labels)
	assert.Equal(t, "Público", labels.Price1)

	admin, err := r.users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.Equal(t, res.BranchID, admin.BranchID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secreto123")))

	again, err := r.bootstrap().Run(ctx, usecase.BootstrapInput{AdminPassword: "otro"})
	require.NoError(t, err)
	assert.False(t, again.Seeded)
	assert.Equal(t, res.CompanyID, again.CompanyID)
	users, _ := r.users.List(ctx)
	assert.Len(t, users, 1)
}

func TestBootstrap_RequierePassword(t *testing.T) {
	r := newRepos()
	_, err := r.bootstrap().Run(context.Background(), usecase.BootstrapInput{})
	assert.ErrorIs(t, err, usecase.ErrSeedPasswordRequired)
}

func TestProductUseCase_CRUD(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	uc := usecase.NewProductUseCase(r.products, r.categories)
	cat, err := usecase.NewCategoryUseCase(r.categories, r.products).Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "AG-1", Name: "Agua 1L", CategoryID: cat.ID,
		Price1: decimal.NewFromInt(12), Stock: decimal.NewFromInt(30), MinStock: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.True(t, p.Active)

	name := "Agua natural 1L"
	price := decimal.NewFromInt(13)
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Price1: &price})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.Price1.Equal(price))
	assert.True(t, updated.Stock.Equal(decimal.NewFromInt(30)), "editar no toca el stock")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "X", Name: "X", Price1: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUseCase_NoBorraCategoriaEnUso(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	cats := usecase.NewCategoryUseCase(r.categories, r.products)
	cat, err := cats.Create(ctx, dto.CategoryRequest{Name: "Limpieza"})
	require.NoError(t, err)
	p, err := usecase.NewProductUseCase(r.products, r.categories).Create(ctx, dto.CreateProductRequest{Code: "J1", Name: "Jabón", CategoryID: cat.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, cats.Delete(ctx, cat.ID), domain.ErrCategoryInUse)

	require.NoError(t, r.products.Delete(ctx, p.ID))
	assert.NoError(t, cats.Delete(ctx, cat.ID))
	assert.ErrorIs(t, cats.Delete(ctx, cat.ID), domain.ErrNotFound)
}

func TestClientUseCase_LimiteYBorrado(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	uc := usecase.NewClientUseCase(r.clients, r.credits, r.payments, r.sales)

	c, err := uc.Create(ctx, dto.ClientRequest{Name: "Rosa", CreditLimit: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	assert.True(t, c.CurrentCredit.IsZero())
	assert.True(t, c.AvailableCredit.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, r.clients.UpdateCurrentCredit(ctx, c.ID, decimal.NewFromInt(600)))
	require.NoError(t, r.credits.Create(ctx, &entity.Credit{
		ID: "cr1", ClientID: c.ID, Amount: decimal.NewFromInt(600), Balance: decimal.NewFromInt(600),
		Status: entity.CreditStatusPending, DueDate: time.Now().AddDate(0, 0, 30),
	}))

	// bajar el límite por debajo del saldo se permite y deja disponible negativo
	updated, err := uc.Update(ctx, c.ID, dto.ClientRequest{Name: "Rosa M.", CreditLimit: decimal.NewFromInt(500)})
	require.NoError(t, err)
	assert.True(t, updated.CurrentCredit.Equal(decimal.NewFromInt(600)), "editar no toca el saldo")
	assert.True(t, updated.AvailableCredit.Equal(decimal.NewFromInt(-100)))

	assert.ErrorIs(t, uc.Delete(ctx, c.ID), domain.ErrClientHasOpenCredits)

	st, err := uc.Statement(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, st.Credits, 1)
	assert.Equal(t, "Rosa M.", st.Client.Name)
	assert.Empty(t, st.Sales)
}

func TestUserUseCase(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	uc := usecase.NewUserUseCase(r.users)

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "caja1", Password: "123456", Name: "Caja Uno", Role: entity.RoleCashier})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "CAJA1", Password: "123456", Name: "Otro", Role: entity.RoleCashier})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "root", Password: "123456", Name: "Root", Role: "superusuario"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, "otro-admin", u.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "otro-admin", u.ID), domain.ErrUserNotFound)
}

func TestBranchUseCase_NoBorraSucursalConCajas(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	uc := usecase.NewBranchUseCase(r.branches, r.registers)

	b, err := uc.Create(ctx, dto.BranchRequest{Name: "Centro"})
	require.NoError(t, err)
	reg, err := uc.CreateRegister(ctx, dto.RegisterRequest{BranchID: b.ID, Name: "Caja 1"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, b.ID), domain.ErrConflict)
	require.NoError(t, uc.DeleteRegister(ctx, reg.ID))
	assert.NoError(t, uc.Delete(ctx, b.ID))

	_, err = uc.CreateRegister(ctx, dto.RegisterRequest{BranchID: "nope", Name: "Caja X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyUseCase(t *testing.T) {
	r := newRepos()
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(r.company, r.labels)

	_, err := uc.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Save(ctx, dto.UpdateCompanyRequest{Name: "Tienda", TaxRate: decimal.NewFromInt(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	saved, err := uc.Save(ctx, dto.UpdateCompanyRequest{Name: "Tienda", TaxRate: decimal.NewFromInt(8)})
	require.NoError(t, err)
	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, got.TaxRate.Equal(decimal.NewFromInt(8)))
}
