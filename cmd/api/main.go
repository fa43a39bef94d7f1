package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
	"github.com/jhoicas/PuntoVenta-api/pkg/config"
	"github.com/jhoicas/PuntoVenta-api/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.Close()

	defaultTax, err := decimal.NewFromString(cfg.Sales.DefaultTaxRate)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Sales.DefaultTaxRate).Msg("SALES_DEFAULT_TAX_RATE inválido")
	}

	if cfg.Seed.Enabled {
		seed := usecase.NewBootstrapUseCase(st.Company, st.PriceLabels, st.Branches, st.Registers, st.Categories, st.Users)
		res, err := seed.Run(ctx, usecase.BootstrapInput{
			CompanyName:   cfg.App.Name,
			TaxRate:       defaultTax,
			AdminUsername: cfg.Seed.AdminUsername,
			AdminPassword: cfg.Seed.AdminPassword,
		})
		switch {
		case err != nil:
			log.Fatal().Err(err).Msg("datos iniciales")
		case res.Seeded:
			log.Info().Str("branch_id", res.BranchID).Str("admin", cfg.Seed.AdminUsername).Msg("datos iniciales creados")
		}
	}

	// Motores
	completeSaleUC := sales.NewCompleteSaleUseCase(st.TxRunner, st.Company, st.Registers, st.Folios, sales.Config{
		DefaultTaxRate: defaultTax,
		CreditTermDays: cfg.Sales.CreditTermDays,
	}, log)
	saleQueryUC := sales.NewQueryUseCase(st.Sales, st.Products, st.Company, defaultTax)
	applyPaymentUC := appcredit.NewApplyPaymentUseCase(st.TxRunner, log)
	creditQueryUC := appcredit.NewQueryUseCase(st.Credits, st.Payments, st.Clients)
	registerMovementUC := inventory.NewRegisterMovementUseCase(st.TxRunner, st.Movements, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.Products, st.Analytics)

	// PDF: ticket / factura de la venta
	receiptUC := receipt.NewUseCase(st.Sales, st.Company, st.Clients, st.Users, st.Branches, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PuntoVenta API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CompleteSale:     completeSaleUC,
		SaleQuery:        saleQueryUC,
		Receipt:          receiptUC,
		ApplyPayment:     applyPaymentUC,
		CreditQuery:      creditQueryUC,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		ProductUC:        usecase.NewProductUseCase(st.Products, st.Categories),
		CategoryUC:       usecase.NewCategoryUseCase(st.Categories, st.Products),
		ClientUC:         usecase.NewClientUseCase(st.Clients, st.Credits, st.Payments, st.Sales),
		BranchUC:         usecase.NewBranchUseCase(st.Branches, st.Registers),
		UserUC:           usecase.NewUserUseCase(st.Users),
		CompanyUC:        usecase.NewCompanyUseCase(st.Company, st.PriceLabels),
		DashboardUC:      appanalytics.NewDashboardUseCase(st.Analytics, st.Clients),
		ReportUC:         appanalytics.NewReportUseCase(st.Analytics, st.Branches, st.Users),
		JWTSecret:        cfg.JWT.Secret,
		Ping:             st.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
