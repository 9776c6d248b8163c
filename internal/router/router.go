// Package router sets up all HTTP routes and middleware chains for the
// mockup API. Everything under /api requires a verified bearer token.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mockupstudio/internal/handlers"
	"mockupstudio/internal/middleware"
)

// Options holds the dependencies of the route tree.
type Options struct {
	Verifier    middleware.TokenVerifier
	Users       middleware.UserEnsurer
	Designs     *handlers.Designs
	RateLimiter *middleware.RateLimiter // nil disables per-client limiting
	CORSOrigins []string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check and metrics, no auth.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Verifier, opts.Users))
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}

		r.Post("/users/sync", handlers.SyncUser)
		r.Get("/dashboard", handlers.Dashboard)
		r.Get("/themes", handlers.Themes)

		r.Route("/designs", func(r chi.Router) {
			r.Post("/generate", opts.Designs.Generate)
			r.Get("/all", opts.Designs.List)
			r.Get("/{id}", opts.Designs.Get)
			r.Delete("/{id}", opts.Designs.Delete)
			r.Post("/{id}/screens", opts.Designs.AddScreen)
			r.Patch("/{id}/theme", opts.Designs.SetTheme)
			r.Patch("/{id}/project-name", opts.Designs.RenameProject)
			r.Post("/{id}/export", opts.Designs.Export)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
