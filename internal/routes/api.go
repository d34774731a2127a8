package routes

import (
	"github.com/ncordova/vinoteca/internal/middleware"
	"github.com/ncordova/vinoteca/internal/router"
)

// Register wires the full route table onto the router. The catalog and the
// shipping calculator are public; cart, checkout and reviews require a
// logged-in user; catalog management requires the admin role.
func Register(r *router.Router, deps Deps) {
	// Operational endpoints
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle("GET", "/metrics", deps.Metrics.Handler())
	}

	// Uploaded review images
	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	// Public catalog
	r.Get("/api/products", deps.Products.List)
	r.Get("/api/products/promociones", deps.Products.Promociones)
	r.Get("/api/products/{id}", deps.Products.Get)
	r.Get("/api/products/{id}/recomendados", deps.Products.Recomendados)

	// Public shipping calculator
	r.Post("/api/shipping/calcular", deps.Shipping.Calcular)

	// Authenticated storefront
	authed := r.Group(middleware.RequireAuth)
	authed.Get("/api/cart", deps.Cart.Get)
	authed.Post("/api/cart/items", deps.Cart.AddItem)
	authed.Put("/api/cart/items/{id}", deps.Cart.UpdateItem)
	authed.Delete("/api/cart/items/{id}", deps.Cart.RemoveItem)
	authed.Delete("/api/cart", deps.Cart.Clear)

	authed.Post("/api/orders/paypal/create", deps.Orders.Create)
	authed.Post("/api/orders/paypal/capture", deps.Orders.Capture)

	authed.Get("/api/reviews/elegibles", deps.Reviews.Elegibles)
	authed.Post("/api/reviews", deps.Reviews.Create)

	// Catalog management
	admin := r.Group(middleware.RequireAuth, middleware.RequireAdmin)
	admin.Get("/api/products/bajo-stock", deps.Products.BajoStock)
	admin.Post("/api/products", deps.Products.Create)
	admin.Put("/api/products/{id}", deps.Products.Update)
	admin.Delete("/api/products/{id}", deps.Products.Delete)
	admin.Post("/api/products/promociones", deps.Products.CreatePromotion)
}
