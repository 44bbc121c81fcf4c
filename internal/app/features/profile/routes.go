// internal/app/features/profile/routes.go
package profile

import "github.com/go-chi/chi/v5"

// Routes registers the guarded profile pages.
func Routes(r chi.Router, h *Handler) {
	r.Get("/profile", h.ServeProfile)
	r.Post("/profile", h.HandleUpdate)
	r.Get(completePath, h.ServeComplete)
	r.Post(completePath, h.HandleComplete)
}

// PublicRoutes registers POST /timezone, which works signed in or not.
func PublicRoutes(r chi.Router, h *Handler) {
	r.Post("/timezone", h.HandleTimezone)
}
