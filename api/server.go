// ABOUTME: HTTP server wiring: router, CORS, middleware, and route table
// ABOUTME: Unmatched routes fall through to the origin passthrough

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/copus-io/copus-edge/api/handlers"
	"github.com/copus-io/copus-edge/api/middleware"
	"github.com/copus-io/copus-edge/core/interfaces"
	"github.com/copus-io/copus-edge/pkg/config"
)

// NewRouter builds the edge router with all routes and middleware
// attached.
func NewRouter(deps interfaces.Dependencies, cfg *config.Config) chi.Router {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if deps.Logger != nil {
		router.Use(middleware.RequestLogging(deps.Logger))
	}
	if cfg.Server.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
		router.Use(middleware.RateLimit(limiter))
	}

	h := handlers.NewHandler(deps, cfg)

	router.Get("/", h.Home)
	router.Get("/home", h.Home)
	router.Get("/index.html", h.Home)
	router.Get("/work/{id}", h.Article)
	router.Get("/user/{namespace}", h.Profile)
	router.Get("/u/{namespace}", h.Profile)
	router.Get("/treasury/{namespace}", h.Treasury)
	router.Get("/api/discover", h.Discover)
	router.Get("/api/search", h.Search)
	router.Get("/sitemap.xml", h.Sitemap)
	router.Get("/robots.txt", h.Robots)
	router.Get("/llms.txt", h.LLMs)
	router.Get("/articles.txt", h.Articles)

	// Everything else flows to the origin unmodified.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.Passthrough(w, r)
	})

	return router
}
