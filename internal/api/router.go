/**
 * @description
 * This file sets up the HTTP router using the go-chi/chi router. It defines
 * the API routes, applies middleware for logging, CORS, and authentication,
 * and maps the routes to their corresponding handler functions.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the CRM routes. Service
// catalog mutations sit behind the session middleware; the quote endpoint is
// rate limited per client IP.
func NewRouter(h *Handler, auth func(http.Handler) http.Handler, limiter *RedisRateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", h.handleHealth)

	// Client subscription lifecycle
	r.Route("/client-status", func(r chi.Router) {
		r.Post("/", h.handleCreateClientStatus)
		r.Get("/", h.handleListClientStatuses)
		r.Patch("/{id}", h.handleUpdateClientStatus)
		r.Delete("/{id}", h.handleDeleteClientStatus)
	})

	// Service catalog: reads are public, mutations require a session.
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.handleListServices)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.handleCreateService)
			r.Patch("/{id}", h.handleUpdateService)
			r.Delete("/{id}", h.handleDeleteService)
		})
	})

	// Active account pool
	r.Route("/active-account", func(r chi.Router) {
		r.Post("/", h.handleCreateActiveAccount)
		r.Get("/", h.handleListActiveAccounts)
		r.Patch("/{id}", h.handleUpdateActiveAccount)
		r.Delete("/{id}", h.handleDeleteActiveAccount)
	})

	// Exchange-rate quote, rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(RateLimit(limiter))
		r.Get("/rates/usdt-ves", h.handleGetUSDTVESRate)
	})

	return r
}
