package routes

import (
	"infinite-experiment/consortium/internal/api"
	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers. Reads are
// public; every mutation needs an authenticated caller and is rate limited.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, keys auth.ApiKeyLookup, jwtSecret []byte, limiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {
		// Public reads
		v1.Get("/governance/operational", handlers.GetOperational())
		v1.Get("/governance/callers/{address}", handlers.GetCaller())
		v1.Get("/governance/events", handlers.ListEvents())
		v1.Get("/airlines/count", handlers.CountAirlines())
		v1.Get("/airlines/{address}", handlers.GetAirline())
		v1.Get("/airlines/{address}/funded", handlers.IsFunded())
		v1.Get("/candidacies/{address}", handlers.GetCandidacy())

		// Authenticated mutations
		v1.Group(func(authed chi.Router) {
			authed.Use(limiter.Middleware)
			authed.Use(middleware.AuthMiddleware(keys, jwtSecret))

			authed.Put("/governance/operational", handlers.SetOperational())
			authed.Post("/governance/callers", handlers.AuthorizeCaller())
			authed.Delete("/governance/callers/{address}", handlers.DeauthorizeCaller())
			authed.Post("/funding", handlers.Fund())
			authed.Post("/airlines", handlers.RegisterAirline())
		})
	})
}
