package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-product-service/internal/api/http/handlers"
	"github.com/spec-kit/insurance-product-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.AuthMiddleware
	AdminRole      string
}

// RegisterRoutes wires HTTP routes. Every /product route requires
// authentication; mutations additionally require the admin role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	product := app.Group("/product", cfg.AuthMiddleware.Handle)
	product.Get("", cfg.Products.GetProduct)

	requireAdmin := auth.RequireAdmin(cfg.AdminRole)
	product.Post("", requireAdmin, cfg.Products.CreateProduct)
	product.Put("", requireAdmin, cfg.Products.UpdateProduct)
	product.Delete("", requireAdmin, cfg.Products.DeleteProduct)
}
