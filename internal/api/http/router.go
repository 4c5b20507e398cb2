package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shri-jewellery/storefront/internal/api/http/handlers"
	"github.com/shri-jewellery/storefront/internal/auth"
	"github.com/shri-jewellery/storefront/internal/service"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Metrics   *handlers.MetricsHandler
	Pages     *handlers.PagesHandler
	Catalog   *handlers.CatalogHandler
	Auth      *handlers.AuthHandler
	Orders    *handlers.OrdersHandler
	Assistant *handlers.AssistantHandler

	Sessions *auth.SessionMiddleware
	Users    *service.AuthService
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	// everything below is bound to a browser session
	web := app.Group("", cfg.Sessions.Handle)

	web.Get(handlers.HomePath, auth.RequireUser(cfg.Users, handlers.LoginPath), cfg.Pages.Home)
	web.Get(handlers.LoginPath, cfg.Pages.Login)
	web.Get("/logout", cfg.Pages.Logout)
	web.Get("/order/:id", cfg.Pages.OrderConfirmed)
	web.Get("/track", cfg.Pages.Track)

	api := web.Group("/api")
	api.Get("/products", cfg.Catalog.ListProducts)
	api.Get("/products/:id", cfg.Catalog.GetProduct)

	api.Post("/send-otp", cfg.Auth.SendOTP)
	api.Post("/verify-otp", cfg.Auth.VerifyOTP)

	api.Post("/order", cfg.Orders.CreateOrder)
	api.Get("/order/:id", cfg.Orders.GetOrder)
	api.Get("/order/:id/status", cfg.Orders.GetStatus)
	api.Post("/order/:id/mark_delivered", cfg.Orders.MarkDelivered)

	api.Get("/unsplash", cfg.Assistant.LookupImage)
	api.Post("/chat", cfg.Assistant.Chat)
}
