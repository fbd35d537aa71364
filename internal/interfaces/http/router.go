package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/analytics"
	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/billing"
	"github.com/jhoicas/taller-api/internal/application/ledger"
	"github.com/jhoicas/taller-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	OrderUC     *ledger.OrderUseCase
	WorkUC      *ledger.WorkUseCase
	PartUC      *ledger.PartUseCase
	ExpenseUC   *ledger.ExpenseUseCase
	CommentUC   *ledger.CommentUseCase
	AuditUC     *appaudit.UseCase
	ReceiptUC   *billing.ReceiptUseCase
	UserUC      *usecase.UserUseCase
	ServiceUC   *usecase.ServiceUseCase
	AnalyticsUC *analytics.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/me", authHandler.Me)
	protected.Get("/me/commission", analyticsHandler.MyCommission)

	catalog := NewCatalogHandler(deps.UserUC, deps.ServiceUC)
	protected.Get("/users", catalog.Performers)
	protected.Get("/services", catalog.ActiveServices)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id", RequireAdmin(), orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.ChangeStatus)
	orders.Get("/:id/receipt.pdf", orderHandler.Receipt)

	lines := NewLineHandler(deps.WorkUC, deps.PartUC)
	orders.Post("/:id/works/from-service", lines.AddWorkFromService)
	orders.Post("/:id/works/custom", lines.AddCustomWork)
	orders.Patch("/:id/works/:workId", lines.UpdateWork)
	orders.Delete("/:id/works/:workId", lines.DeleteWork)
	orders.Post("/:id/parts", lines.AddPart)
	orders.Patch("/:id/parts/:partId", lines.UpdatePart)
	orders.Delete("/:id/parts/:partId", lines.DeletePart)

	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	orders.Get("/:id/expenses", expenseHandler.ListByOrder)
	orders.Post("/:id/expenses", expenseHandler.AddToOrder)
	orders.Patch("/:id/expenses/:expenseId", expenseHandler.UpdateOrderExpense)
	orders.Delete("/:id/expenses/:expenseId", expenseHandler.DeleteOrderExpense)

	commentHandler := NewCommentHandler(deps.CommentUC, deps.AuditUC)
	orders.Get("/:id/comments", commentHandler.List)
	orders.Post("/:id/comments", commentHandler.Add)
	orders.Get("/:id/audit", commentHandler.Audit)

	// Gastos generales: alta y listado sólo admin; edición admin o creador
	expenses := protected.Group("/expenses")
	expenses.Get("/", RequireAdmin(), expenseHandler.ListShop)
	expenses.Post("/", RequireAdmin(), expenseHandler.CreateShop)
	expenses.Patch("/:id", expenseHandler.UpdateShop)
	expenses.Delete("/:id", expenseHandler.DeleteShop)

	// Admin
	admin := protected.Group("/admin", RequireAdmin())
	admin.Get("/users", catalog.ListUsers)
	admin.Post("/users", catalog.CreateUser)
	admin.Patch("/users/:id", catalog.UpdateUser)
	admin.Post("/users/:id/password", catalog.ResetPassword)
	admin.Get("/services", catalog.ListServices)
	admin.Post("/services", catalog.CreateService)
	admin.Patch("/services/:id", catalog.UpdateService)
	admin.Get("/analytics", analyticsHandler.Shop)
}
