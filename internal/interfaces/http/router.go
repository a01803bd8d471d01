package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/factory-api/internal/application/activity"
	appanalytics "github.com/jhoicas/factory-api/internal/application/analytics"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/inventory"
	"github.com/jhoicas/factory-api/internal/application/orders"
	"github.com/jhoicas/factory-api/internal/application/purchasing"
	"github.com/jhoicas/factory-api/internal/application/reports"
	"github.com/jhoicas/factory-api/internal/application/seed"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// APIVersion versión publicada en /api y /api/health.
const APIVersion = "1.0.0"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	OrderUC         *orders.OrderUseCase
	ItemUC          *inventory.ItemUseCase
	MaterialUC      *inventory.MaterialUseCase
	PurchaseOrderUC *purchasing.PurchaseOrderUseCase
	ActivityUC      *activity.QueryUseCase
	Recorder        *activity.Recorder
	DashboardUC     *appanalytics.DashboardUseCase
	LookupUC        *appanalytics.LookupUseCase
	ReportUC        *reports.ReportUseCase
	Seeder          *seed.Seeder
	Ping            func(ctx context.Context) error // opcional: verificación de la base en /health
	AppName         string
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unhealthy", "service": deps.AppName, "error": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   deps.AppName,
			"timestamp": time.Now().UTC(),
			"version":   APIVersion,
		})
	}
	app.Get("/health", health)

	api := app.Group("/api")
	api.Get("/health", health)
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"application": deps.AppName,
			"version":     APIVersion,
			"status":      "running",
			"endpoints": fiber.Map{
				"auth":            "/api/auth/login",
				"users":           "/api/users",
				"orders":          "/api/orders",
				"inventory":       "/api/inventory",
				"raw_materials":   "/api/raw-materials",
				"purchase_orders": "/api/purchase-orders",
				"dashboard":       "/api/dashboard/stats",
				"reports":         "/api/reports/orders",
				"health":          "/api/health",
			},
		})
	})

	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Recorder)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", authRequired, adminOnly, authHandler.Register)
	api.Get("/auth/me", authRequired, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", authRequired)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Recorder)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Post("/:id/reset-password", adminOnly, userHandler.ResetPassword)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Recorder)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/", adminOnly, orderHandler.Create)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Patch("/:id/status", orderHandler.SetStatus)
	ordersGroup.Delete("/:id", adminOnly, orderHandler.Delete)

	inv := protected.Group("/inventory")
	invHandler := NewInventoryHandler(deps.ItemUC, deps.Recorder)
	inv.Get("/", invHandler.List)
	inv.Get("/:id", invHandler.GetByID)
	inv.Post("/", adminOnly, invHandler.Create)
	inv.Post("/:id/adjust", adminOnly, invHandler.Adjust)
	inv.Put("/:id", adminOnly, invHandler.Update)
	inv.Delete("/:id", adminOnly, invHandler.Delete)

	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.MaterialUC, deps.Recorder)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Post("/:id/adjust", adminOnly, materialHandler.Adjust)
	materials.Put("/:id", adminOnly, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	pos := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC, deps.Recorder)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/", adminOnly, poHandler.Create)
	pos.Put("/:id", adminOnly, poHandler.Update)
	pos.Post("/:id/receive", adminOnly, poHandler.Receive)
	pos.Delete("/:id", adminOnly, poHandler.Delete)

	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity-logs", adminOnly, activityHandler.List)

	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.LookupUC)
	dash := protected.Group("/dashboard")
	dash.Get("/stats", dashHandler.GetStats)
	dash.Get("/charts/orders-by-status", dashHandler.OrdersByStatus)
	dash.Get("/charts/inventory-status", dashHandler.InventoryStatus)
	dash.Get("/charts/monthly-orders", dashHandler.MonthlyOrders)
	protected.Get("/categories", dashHandler.Categories)
	protected.Get("/suppliers", dashHandler.Suppliers)

	rep := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	rep.Get("/orders", reportHandler.Orders)
	rep.Get("/inventory", reportHandler.Inventory)
	rep.Get("/purchase-orders", reportHandler.PurchaseOrders)

	seedHandler := NewSeedHandler(deps.Seeder, deps.Recorder)
	protected.Post("/seed-data", adminOnly, seedHandler.SeedData)
}
