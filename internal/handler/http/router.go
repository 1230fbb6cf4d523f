package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medikart/PharmacyGo/internal/service"
	"github.com/medikart/PharmacyGo/pkg/health"
	"github.com/medikart/PharmacyGo/pkg/middleware"
)

// RouterConfig carries the collaborators the router wires together.
type RouterConfig struct {
	Catalog        *service.CatalogService
	Cart           *service.CartService
	Dashboard      *service.DashboardService
	HealthHandler  *health.Handler
	Logger         *slog.Logger
	CORS           middleware.CORSConfig
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all pharmacy routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("pharmacy"))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
	}

	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	medicineHandler := NewMedicineHandler(cfg.Catalog, cfg.Logger)
	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", medicineHandler.List)
		r.Post("/", medicineHandler.Create)
		r.Get("/{id}", medicineHandler.Get)
		r.Put("/{id}", medicineHandler.Replace)
		r.Delete("/{id}", medicineHandler.Delete)
	})

	cartHandler := NewCartHandler(cfg.Cart, cfg.Logger)
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.Get)
		r.Delete("/", cartHandler.Clear)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{medicineId}", cartHandler.SetQuantity)
		r.Delete("/items/{medicineId}", cartHandler.RemoveItem)
		r.Post("/checkout", cartHandler.Checkout)
	})

	dashboardHandler := NewDashboardHandler(cfg.Dashboard, cfg.Logger)
	r.Get("/dashboard", dashboardHandler.Stats)

	return r
}
