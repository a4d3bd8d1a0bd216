package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/middleware"
)

// NewRouter mounts every API route on a chi router.
// authn must be the bearer token middleware; the admin gate is derived from
// it with middleware.RequireRole. Cross-cutting middleware (request ID,
// logging, CORS, body limits) is applied by main around this router.
func NewRouter(s *Server, authn func(http.Handler) http.Handler) *chi.Mux {
	admin := middleware.RequireRole(domain.RoleAdmin)

	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Post("/forgot-password", s.ForgotPassword)
		r.Post("/reset-password/{token}", s.ResetPassword)
		r.With(authn).Get("/profile", s.Profile)
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Get("/", s.ListVendors)
		r.Get("/filter", s.FilterVendors)
		r.Get("/{id}", s.GetVendor)
		r.Get("/{id}/reviews", s.ListVendorReviews)

		r.With(authn).Post("/{id}/reviews", s.CreateVendorReview)

		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Post("/", s.CreateVendor)
			r.Post("/bulk", s.CreateVendorsBulk)
			r.Patch("/{id}", s.UpdateVendor)
			r.Delete("/{id}", s.DeleteVendor)
			r.Post("/{id}/routes", s.CreateRoute)
			r.Post("/{id}/routes/bulk", s.CreateRoutesBulk)
		})
	})

	r.Route("/routes", func(r chi.Router) {
		r.Get("/{id}/reviews", s.ListRouteReviews)
		r.With(authn).Post("/{id}/reviews", s.CreateRouteReview)

		r.Group(func(r chi.Router) {
			r.Use(authn, admin)
			r.Patch("/{id}", s.UpdateRoute)
			r.Delete("/{id}", s.DeleteRoute)
		})
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Use(authn)
		r.Patch("/{id}", s.UpdateReview)
		r.Delete("/{id}", s.DeleteReview)
	})

	return r
}
