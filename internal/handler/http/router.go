package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Catalog         *catalog.Catalog
	SearchService   *service.SearchService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	CheckoutService *service.CheckoutService
	SessionManager  *session.Manager
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	CORSOrigins     []string
	Environment     string
	PprofCIDRs      []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.CORSOrigins
	corsCfg.Environment = deps.Environment
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Logger)
	searchHandler := NewSearchHandler(deps.SearchService, deps.Logger)
	cartHandler := NewCartHandler(deps.CartService, deps.Logger)
	wishlistHandler := NewWishlistHandler(deps.WishlistService, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutService, deps.Logger)
	sessionHandler := NewSessionHandler(deps.SessionManager, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		// The catalog is static, so listings are safe to cache briefly.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(300))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{productId}", catalogHandler.GetProduct)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/search", searchHandler.Search)
		})

		r.Get("/session", sessionHandler.Get)
		r.Post("/session/signout", sessionHandler.SignOut)

		// Session-scoped state requires the session key header.
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(SessionKeyFromHeader)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)

				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)

				r.Post("/items", wishlistHandler.AddItem)
				r.Get("/items/{productId}", wishlistHandler.HasItem)
				r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", checkoutHandler.Begin)
				r.Get("/", checkoutHandler.Get)
				r.Delete("/", checkoutHandler.Cancel)

				r.Put("/shipping", checkoutHandler.SubmitShipping)
				r.Put("/payment", checkoutHandler.SelectPayment)
				r.Post("/back", checkoutHandler.Back)
				r.Post("/order", checkoutHandler.PlaceOrder)
			})
		})
	})

	return r
}
