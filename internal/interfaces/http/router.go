package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Maquila-api/internal/application/auth"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *maquila.CompanyUseCase
	UserUC       *maquila.UserUseCase
	ClientUC     *maquila.ClientUseCase
	OrderUC      *maquila.OrderUseCase
	ToastingUC   *maquila.ToastingUseCase
	ProductionUC *maquila.ProductionUseCase
	InvoiceUC    *maquila.InvoiceUseCase
	ActivityUC   *maquila.ActivityUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
// La autorización fina (tenant, rol por estado) la resuelven los casos de uso;
// RequireRole solo filtra rutas administrativas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (super_admin)
	companies := protected.Group("/companies", RequireRole(entity.RoleSuperAdmin))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Post("/:id/status", companyHandler.SetStatus)

	// Users
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin, entity.RoleAdminCompany))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Orders + sub-procesos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	processHandler := NewProcessHandler(deps.ToastingUC, deps.ProductionUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/transition", orderHandler.Transition)
	orders.Get("/:id/toasting", processHandler.GetToasting)
	orders.Post("/:id/toasting/:step", processHandler.ToastingStep)
	orders.Get("/:id/production", processHandler.GetProduction)
	orders.Post("/:id/production", processHandler.CreateProduction)
	orders.Post("/:id/invoice", invoiceHandler.Create)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/status", invoiceHandler.ChangeStatus)

	// Activity (admin_company / super_admin)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", RequireRole(entity.RoleSuperAdmin, entity.RoleAdminCompany), activityHandler.List)
}
