package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	appcredit "github.com/jhoicas/PuntoVenta-api/internal/application/credit"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/receipt"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CompleteSale     *sales.CompleteSaleUseCase
	SaleQuery        *sales.QueryUseCase
	Receipt          *receipt.UseCase
	ApplyPayment     *appcredit.ApplyPaymentUseCase
	CreditQuery      *appcredit.QueryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	ClientUC         *usecase.ClientUseCase
	BranchUC         *usecase.BranchUseCase
	UserUC           *usecase.UserUseCase
	CompanyUC        *usecase.CompanyUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ReportUC         *appanalytics.ReportUseCase
	JWTSecret        string

	// Ping verifica el almacén para /health; nil responde siempre ok.
	Ping func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Ping))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Ventas
	saleHandler := NewSaleHandler(deps.CompleteSale, deps.SaleQuery, deps.Receipt)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Post("/quote", saleHandler.Quote)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Créditos
	creditHandler := NewCreditHandler(deps.ApplyPayment, deps.CreditQuery)
	credits := protected.Group("/credits")
	credits.Get("/", creditHandler.List)
	credits.Get("/summary", creditHandler.Summary)
	credits.Get("/:id", creditHandler.GetByID)
	credits.Post("/:id/payments", creditHandler.ApplyPayment)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/replenishment", managers, inventoryHandler.GetReplenishment)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", managers, categoryHandler.Create)
	categories.Put("/:id", managers, categoryHandler.Update)
	categories.Delete("/:id", managers, categoryHandler.Delete)

	// Clientes
	clientHandler := NewClientHandler(deps.ClientUC)
	clients := protected.Group("/clients")
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Get("/:id/statement", clientHandler.Statement)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", managers, clientHandler.Delete)

	// Administración
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := protected.Group("/branches")
	branches.Get("/", branchHandler.List)
	branches.Post("/", managers, branchHandler.Create)
	branches.Put("/:id", managers, branchHandler.Update)
	branches.Delete("/:id", managers, branchHandler.Delete)

	registers := protected.Group("/registers")
	registers.Get("/", branchHandler.ListRegisters)
	registers.Post("/", managers, branchHandler.CreateRegister)
	registers.Put("/:id", managers, branchHandler.UpdateRegister)
	registers.Delete("/:id", managers, branchHandler.DeleteRegister)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Configuración
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", managers, companyHandler.Update)
	protected.Get("/price-labels", companyHandler.GetPriceLabels)
	protected.Put("/price-labels", managers, companyHandler.UpdatePriceLabels)

	// Reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/sales", managers, reportHandler.GetSalesReport)
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
