package workbench

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/querypad/querypad/core/health"
	"github.com/querypad/querypad/core/sessiontransport"
)

// newRouter assembles the HTTP surface. Health endpoints bypass the session
// middleware; everything under /api requires an authenticated session.
func newRouter(h *Handler, transport *sessiontransport.Cookie, ready http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", ready)

	r.Group(func(r chi.Router) {
		r.Use(transport.Middleware())

		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Route("/api", func(r chi.Router) {
			r.Use(sessiontransport.RequireAuth)
			r.Get("/me", h.Me)
		})
	})

	return r
}
