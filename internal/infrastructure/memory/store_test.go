package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *Store, id string, stock int64) {
	t.Helper()
	require.NoError(t, NewProductRepository(s).Create(context.Background(), &entity.Product{
		ID: id, Name: "P " + id, BranchID: "b1", Active: true, Stock: decimal.NewFromInt(stock),
	}))
}

func TestRunSale_RollbackRestauraTodo(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10)
	boom := errors.New("falla a mitad del commit")

	err := NewTxRunner(s).RunSale(context.Background(), func(
		productRepo repository.ProductRepository,
		clientRepo repository.ClientRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditRepository,
		movRepo repository.InventoryMovementRepository,
		folioRepo repository.FolioSequence,
	) error {
		n, err := folioRepo.Next(context.Background(), "b1")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		require.NoError(t, saleRepo.Create(context.Background(), &entity.Sale{ID: "s1", Folio: "V-000001", BranchID: "b1"}))
		require.NoError(t, productRepo.UpdateStock(context.Background(), "p1", decimal.NewFromInt(3)))
		require.NoError(t, movRepo.Create(context.Background(), &entity.InventoryMovement{ID: "m1", ProductID: "p1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	ctx := context.Background()
	p, err := NewProductRepository(s).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))

	sale, err := NewSaleRepository(s).GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)

	movs, err := NewInventoryMovementRepository(s).List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)

	// el folio consumido también se revierte
	n, err := NewFolioRepository(s).Next(ctx, "b1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRepos_DevuelvenCopias(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 10)
	repo := NewProductRepository(s)

	p, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	p.Stock = decimal.NewFromInt(-99)

	again, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, again.Stock.Equal(decimal.NewFromInt(10)))
}

func TestRepos_NoEncontrado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p, err := NewProductRepository(s).GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, p)

	err = NewProductRepository(s).UpdateStock(ctx, "nope", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, NewClientRepository(s).Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestOpen_SnapshotSobreviveReinicio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.json")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	seedProduct(t, s, "p1", 7)
	require.NoError(t, NewCompanyRepository(s).Save(ctx, &entity.Company{ID: "co", Name: "Tienda", TaxRate: decimal.NewFromInt(16)}))
	_, err = NewFolioRepository(s).Next(ctx, "b1")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	p, err := NewProductRepository(reopened).GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(7)))

	co, err := NewCompanyRepository(reopened).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, co)
	assert.True(t, co.TaxRate.Equal(decimal.NewFromInt(16)))

	n, err := NewFolioRepository(reopened).Next(ctx, "b1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestOpen_SnapshotCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos.json")
	require.NoError(t, writeFile(path, "{no es json"))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestRunTx_RespetaCancelacion(t *testing.T) {
	s := NewStore()
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = s.runTx(context.Background(), func(session) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewProductRepository(s).GetByID(ctx, "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestPaginate(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(list, 0, 0))
	assert.Equal(t, []int{3, 4}, paginate(list, 2, 2))
	assert.Equal(t, []int{5}, paginate(list, 10, 4))
	assert.Equal(t, []int{}, paginate(list, 10, 9))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestUpdateStock_NegativoEsErrorDeIntegridad(t *testing.T) {
	s := NewStore()
	seedProduct(t, s, "p1", 1)

	err := NewProductRepository(s).UpdateStock(context.Background(), "p1", decimal.NewFromInt(-1))
	var integrity *domain.IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "p1", integrity.ID)
}
