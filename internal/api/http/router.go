package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/http/handlers"
	"github.com/impcorecl/ticketeraimpactualizada/internal/auth"
	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Sales          *handlers.SalesHandler
	Scan           *handlers.ScanHandler
	Admin          *handlers.AdminHandler
	Stats          *handlers.StatsHandler
	Export         *handlers.ExportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	api.Post("/auth/register", auth.RequireRole(domain.RoleAdmin), cfg.Auth.Register)

	// Door terminal.
	api.Post("/tickets/validate", auth.RequireRole(domain.RoleScanner), cfg.Scan.Validate)
	api.Post("/tickets/:id/revoke", auth.RequireRole(domain.RoleAdmin), cfg.Scan.Revoke)
	api.Post("/tickets/generate", auth.RequireRole(domain.RoleAdmin), cfg.Scan.Generate)
	api.Get("/tickets/:id/qr.png", auth.RequireRole(domain.RoleSeller), cfg.Scan.QRCode)

	// Sale terminal.
	api.Post("/sales", auth.RequireRole(domain.RoleSeller), cfg.Sales.CreateSale)
	api.Get("/sales/report", auth.RequireRole(domain.RoleSeller), cfg.Sales.Report)
	api.Get("/sales/commissions", auth.RequireRole(domain.RoleAdmin), cfg.Sales.Commissions)

	// Dashboard.
	api.Get("/stats", cfg.Stats.Overview)

	// Catalog and people administration.
	api.Get("/ticket-types", cfg.Admin.ListTicketTypes)
	api.Post("/ticket-types", auth.RequireRole(domain.RoleAdmin), cfg.Admin.CreateTicketType)
	api.Get("/ambassadors", auth.RequireRole(domain.RoleSeller), cfg.Admin.ListAmbassadors)
	api.Post("/ambassadors", auth.RequireRole(domain.RoleAdmin), cfg.Admin.CreateAmbassador)
	api.Put("/ambassadors/:id", auth.RequireRole(domain.RoleAdmin), cfg.Admin.UpdateAmbassador)
	api.Get("/customers", auth.RequireRole(domain.RoleSeller), cfg.Admin.ListCustomers)
	api.Put("/customers/:id", auth.RequireRole(domain.RoleAdmin), cfg.Admin.UpdateCustomer)

	// Spreadsheet exports.
	api.Get("/export/sales.xlsx", auth.RequireRole(domain.RoleAdmin), cfg.Export.Sales)
	api.Get("/export/customers.xlsx", auth.RequireRole(domain.RoleAdmin), cfg.Export.Customers)
}
