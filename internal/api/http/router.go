package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Listings      *handlers.ListingsHandler
	Categories    *handlers.CategoriesHandler
	Messages      *handlers.MessagesHandler
	Reports       *handlers.ReportsHandler
	Users         *handlers.UsersHandler
	Admin         *handlers.AdminHandler
	Authenticator *auth.Authenticator
}

// RegisterRoutes wires HTTP routes. The authenticator runs on every
// request; the role matrix lives in the per-group guards below.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	anyRole := auth.RequireRole(domain.RoleUser, domain.RoleAdmin)
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	app.Use(cfg.Authenticator.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	api := app.Group("/api")

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", adminOnly, cfg.Categories.Create)
	categories.Put("/:id", adminOnly, cfg.Categories.Update)
	categories.Delete("/:id", adminOnly, cfg.Categories.Delete)

	listings := api.Group("/listings")
	listings.Get("/", cfg.Listings.ListActive)
	listings.Get("/all", cfg.Listings.ListAll)
	listings.Get("/category/:categoryId", cfg.Listings.ListByCategory)
	listings.Get("/user/me", anyRole, cfg.Listings.ListMine)
	listings.Get("/user/:userId", cfg.Listings.ListByUser)
	listings.Get("/:id", cfg.Listings.Get)
	listings.Post("/", anyRole, cfg.Listings.Create)
	listings.Put("/:id", anyRole, cfg.Listings.Update)
	listings.Delete("/:id", anyRole, cfg.Listings.Delete)
	listings.Post("/:id/deactivate", anyRole, cfg.Listings.Deactivate)

	messages := api.Group("/messages", anyRole)
	messages.Get("/listing/:listingId", cfg.Messages.ListByListing)
	messages.Get("/listing/:listingId/conversation", cfg.Messages.Conversation)
	messages.Get("/sent", cfg.Messages.Sent)
	messages.Get("/received", cfg.Messages.Received)
	messages.Get("/:id", cfg.Messages.Get)
	messages.Post("/", cfg.Messages.Create)
	messages.Post("/:id/read", cfg.Messages.MarkAsRead)
	messages.Put("/:id", cfg.Messages.Update)
	messages.Delete("/:id", cfg.Messages.Delete)

	reports := api.Group("/reports")
	reports.Get("/", anyRole, cfg.Reports.ListAll)
	reports.Get("/listing/:listingId", anyRole, cfg.Reports.ListByListing)
	reports.Get("/user", anyRole, cfg.Reports.ListMine)
	reports.Get("/status/:status", anyRole, cfg.Reports.ListByStatus)
	reports.Get("/:id", anyRole, cfg.Reports.Get)
	reports.Post("/", anyRole, cfg.Reports.Create)
	reports.Put("/:id/status", adminOnly, cfg.Reports.UpdateStatus)
	reports.Delete("/:id", adminOnly, cfg.Reports.Delete)

	users := api.Group("/users")
	users.Get("/me", anyRole, cfg.Users.Me)
	users.Get("/:id", anyRole, cfg.Users.Get)
	users.Put("/:id", anyRole, cfg.Users.Update)
	users.Delete("/:id", adminOnly, cfg.Users.Delete)

	admin := app.Group("/admin", adminOnly)
	admin.Get("/listings", cfg.Admin.Listings)
	admin.Get("/categories", cfg.Admin.Categories)
	admin.Get("/reports", cfg.Admin.Reports)
}
