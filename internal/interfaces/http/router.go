package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/auth"
	"github.com/jhoicas/controle-estoque/internal/application/inventory"
	"github.com/jhoicas/controle-estoque/internal/application/usecase"
	"github.com/jhoicas/controle-estoque/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	Ledger    inventory.Ledger
	Reports   *inventory.ReportUseCase
	Gate      *access.Gate
	JWTSecret string
	Login     config.LoginConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	op := func(id access.OperationID) fiber.Handler { return RequireOperation(deps.Gate, id) }

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/token", LoginRateLimit(deps.Login.RatePerSecond, deps.Login.Burst), authHandler.Token)
	api.Post("/users", authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC, deps.Gate)
	protected.Get("/users/me", userHandler.Me)
	protected.Get("/users", op(access.OpUsersManage), userHandler.List)
	protected.Patch("/users/:name", op(access.OpUsersManage), userHandler.Promote)
	protected.Get("/me/operations", userHandler.Operations)

	productHandler := NewProductHandler(deps.Ledger)
	protected.Get("/products/low-stock", op(access.OpReportsView), productHandler.LowStock)
	protected.Get("/products", op(access.OpProductsView), productHandler.List)
	protected.Post("/products", op(access.OpProductsCreate), productHandler.Create)
	protected.Post("/products/:code/stock-in", op(access.OpStockIn), productHandler.StockIn)
	protected.Post("/products/:code/stock-out", op(access.OpStockOut), productHandler.StockOut)

	inventoryHandler := NewInventoryHandler(deps.Ledger)
	protected.Get("/suppliers", op(access.OpSuppliersView), inventoryHandler.ListSuppliers)
	protected.Post("/suppliers", op(access.OpSuppliersCreate), inventoryHandler.CreateSupplier)
	protected.Get("/movements", op(access.OpReportsView), inventoryHandler.Movements)
	protected.Get("/products/:code/movements", op(access.OpReportsView), inventoryHandler.History)
	protected.Get("/dashboard", op(access.OpDashboard), inventoryHandler.Dashboard)

	if deps.Reports != nil {
		reportHandler := NewReportHandler(deps.Reports)
		protected.Get("/reports/low-stock.pdf", op(access.OpReportsView), reportHandler.LowStockPDF)
		protected.Get("/reports/movements.xml", op(access.OpReportsView), reportHandler.MovementsXML)
	}
}
