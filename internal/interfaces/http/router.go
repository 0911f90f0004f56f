package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/epi-estoque/internal/application/analytics"
	"github.com/jhoicas/epi-estoque/internal/application/inventory"
	"github.com/jhoicas/epi-estoque/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	StockUC     *inventory.StockUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Ready       func(ctx context.Context) error
	JWTSecret   string
	JWTIssuer   string
}

// readers son los roles que pueden consultar saldos y el dashboard.
var readers = []string{jwt.RoleAdmin, jwt.RoleSafety, jwt.RoleStorekeeper}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", HealthHandler(deps.ServiceName, deps.Ready))

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(readers...))

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.GetSnapshot)
	stock.Get("/alerts", stockHandler.GetAlerts)
	stock.Get("/:materialId/balance", stockHandler.GetBalance)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetDashboard)
}
