package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	OperationUC     *inventory.OperationUseCase
	MovementUC      *inventory.StockMovementUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	InsightsUC      *usecase.InsightsUseCase
	Slips           ports.SlipRenderer
	Health          *HealthHandler
	JWTSecret       string
	Cookie          CookieOptions
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", deps.Health.Health)

	api := app.Group("/api")
	api.Get("/health", deps.Health.Health)

	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	writers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (public, except me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.Export)
	products.Post("/", writers, productHandler.Create)
	products.Post("/bulk", writers, productHandler.BulkCreate)
	products.Post("/import", writers, productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)

	// Operations
	operationHandler := NewOperationHandler(deps.OperationUC, deps.Slips)
	operations := api.Group("/operations", requireAuth)
	operations.Get("/", operationHandler.List)
	operations.Post("/", writers, operationHandler.Create)
	operations.Get("/:id", operationHandler.GetByID)
	operations.Get("/:id/slip", operationHandler.Slip)
	operations.Patch("/:id/status", writers, operationHandler.UpdateStatus)

	// Stock movements
	movementHandler := NewStockMovementHandler(deps.MovementUC)
	movements := api.Group("/stock-movements", requireAuth)
	movements.Get("/", movementHandler.List)
	movements.Patch("/:id/status", writers, movementHandler.UpdateStatus)

	// Insights
	insightsHandler := NewInsightsHandler(deps.InsightsUC, deps.ReplenishmentUC)
	insights := api.Group("/insights", requireAuth)
	insights.Post("/stock", insightsHandler.StockInsights)
	insights.Get("/replenishment", insightsHandler.Replenishment)

	// Dashboard
	dashboardHandler := NewDashboardHandler()
	api.Get("/dashboard/*", requireAuth, dashboardHandler.NotImplemented)
}
