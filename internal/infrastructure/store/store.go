// Package store arma el almacén de entidades según STORE_DRIVER (postgres o memory)
// y, si se configura, la secuencia de folios en Redis.
package store

import (
	"context"
	"fmt"

	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/redisfolio"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
)

// TxRunner une los tres runners transaccionales de los motores.
type TxRunner interface {
	inventory.TxRunner
	sales.TxRunner
	appcredit.TxRunner
}

// Store repositorios listos para inyectar en los casos de uso.
type Store struct {
	Products    repository.ProductRepository
	Categories  repository.CategoryRepository
	Branches    repository.BranchRepository
	Registers   repository.RegisterRepository
	Users       repository.UserRepository
	Clients     repository.ClientRepository
	Company     repository.CompanyRepository
	PriceLabels repository.PriceLabelRepository
	Sales       repository.SaleRepository
	Credits     repository.CreditRepository
	Payments    repository.PaymentRepository
	Movements   repository.InventoryMovementRepository
	Analytics   repository.AnalyticsRepository
	TxRunner    TxRunner

	// Folios secuencia externa (Redis); nil usa la secuencia del propio almacén dentro de la venta.
	Folios repository.FolioSequence

	// Ping verifica el almacén (health check).
	Ping func(ctx context.Context) error

	closers []func()
}

// Close libera conexiones en orden inverso a su apertura.
func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// Open construye el almacén descrito por cfg.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	var s *Store
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem, err := openMemory(cfg.Store)
		if err != nil {
			return nil, err
		}
		s = mem
		log.Info().Str("driver", "memory").Str("snapshot", cfg.Store.SnapshotPath).Msg("almacén en memoria")
	case config.StoreDriverPostgres:
		pg, err := openPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		s = pg
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Store.Driver)
	}

	if cfg.Store.FolioBackend == config.FolioBackendRedis {
		client, err := redisfolio.NewClient(cfg.Redis, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Folios = redisfolio.NewSequence(client)
		s.closers = append(s.closers, func() { _ = client.Close() })
	}
	return s, nil
}

func openMemory(cfg config.StoreConfig) (*Store, error) {
	var (
		st  *memory.Store
		err error
	)
	if cfg.SnapshotPath != "" {
		st, err = memory.Open(cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
	} else {
		st = memory.NewStore()
	}
	return &Store{
		Products:    memory.NewProductRepository(st),
		Categories:  memory.NewCategoryRepository(st),
		Branches:    memory.NewBranchRepository(st),
		Registers:   memory.NewRegisterRepository(st),
		Users:       memory.NewUserRepository(st),
		Clients:     memory.NewClientRepository(st),
		Company:     memory.NewCompanyRepository(st),
		PriceLabels: memory.NewPriceLabelRepository(st),
		Sales:       memory.NewSaleRepository(st),
		Credits:     memory.NewCreditRepository(st),
		Payments:    memory.NewPaymentRepository(st),
		Movements:   memory.NewInventoryMovementRepository(st),
		Analytics:   memory.NewAnalyticsRepository(st),
		TxRunner:    memory.NewTxRunner(st),
		Ping:        func(context.Context) error { return nil },
	}, nil
}

func openPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("store: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	log.Info().Str("driver", "postgres").Msg("conexión a PostgreSQL establecida")
	return &Store{
		Products:    postgres.NewProductRepository(pool),
		Categories:  postgres.NewCategoryRepository(pool),
		Branches:    postgres.NewBranchRepository(pool),
		Registers:   postgres.NewRegisterRepository(pool),
		Users:       postgres.NewUserRepository(pool),
		Clients:     postgres.NewClientRepository(pool),
		Company:     postgres.NewCompanyRepository(pool),
		PriceLabels: postgres.NewPriceLabelRepository(pool),
		Sales:       postgres.NewSaleRepository(pool),
		Credits:     postgres.NewCreditRepository(pool),
		Payments:    postgres.NewPaymentRepository(pool),
		Movements:   postgres.NewInventoryMovementRepository(pool),
		Analytics:   postgres.NewAnalyticsRepository(pool),
		TxRunner:    postgres.NewTxRunner(pool),
		Ping:        pool.Ping,
		closers:     []func(){pool.Close},
	}, nil
}
