// Package api serves the JSON interface for generating design tables.
package api

import (
	"net/http"

	"doegen/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Prefix is where the router expects to be mounted
const Prefix = "/api/v1"

// NewRouter builds the chi router for the JSON API. Browsers on
// allowedOrigins may call it cross-origin; nil disables CORS.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Route(Prefix, func(r chi.Router) {
		r.Get("/samplers", h.ListSamplers)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/doe", h.GenerateDOE)
			r.Post("/lhs", h.GenerateLHS)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, errors.NotFound("route "+r.URL.Path))
	})
	return r
}
