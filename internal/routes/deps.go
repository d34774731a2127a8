package routes

import (
	"net/http"

	"github.com/ncordova/vinoteca/internal/handler/api"
	"github.com/ncordova/vinoteca/internal/middleware"
)

// Deps contains the handlers and middleware the route table wires together.
type Deps struct {
	Products *api.ProductHandler
	Cart     *api.CartHandler
	Orders   *api.OrderHandler
	Shipping *api.ShippingHandler
	Reviews  *api.ReviewHandler

	// Health responds on /health for load balancer probes.
	Health http.HandlerFunc

	// Metrics serves the Prometheus scrape endpoint.
	Metrics *middleware.Metrics

	// UploadDir is the directory of stored review images, served at /uploads.
	UploadDir string
}
