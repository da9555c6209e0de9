// Package router sets up all HTTP routes and middleware chains for the
// SecurePass JSON API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"securepass/internal/handlers"
	"securepass/internal/middleware"
	"securepass/internal/session"
)

// Options carries the router settings that come from configuration.
type Options struct {
	// Secure marks the CSRF cookie Secure. Set it behind TLS.
	Secure bool

	// Limiter guards generate and import. Nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, vaults *session.Vaults, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check: no vault, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadVault(vaults))
		r.Use(middleware.NewCSRF(opts.Secure))

		limited := func(h http.HandlerFunc) http.Handler {
			if opts.Limiter == nil {
				return h
			}
			return opts.Limiter.Middleware(h)
		}

		// Passwords
		r.Route("/passwords", func(r chi.Router) {
			r.Get("/", api.ListPasswords)
			r.Post("/", api.CreatePassword)
			r.Delete("/", api.ClearPasswords)
			r.Post("/bulk-category", api.BulkCategory)
			r.Patch("/{id}", api.UpdatePassword)
			r.Delete("/{id}", api.DeletePassword)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.ListCategories)
			r.Post("/", api.CreateCategory)
			r.Patch("/{id}", api.UpdateCategory)
			r.Delete("/{id}", api.DeleteCategory)
		})

		// Statistics
		r.Get("/stats", api.Stats)
		r.Get("/stats/categories", api.CategoryStats)

		// Generator and backups
		r.Method(http.MethodPost, "/generate", limited(api.Generate))
		r.Post("/export", api.Export)
		r.Post("/export/archive", api.ExportArchive)
		r.Method(http.MethodPost, "/import", limited(api.Import))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
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
