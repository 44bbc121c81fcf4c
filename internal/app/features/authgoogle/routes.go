// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns the router for the OAuth endpoints, mounted under /auth.
// These routes are public (no authentication required).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// GET /auth/google - start the Google OAuth flow
	r.Get("/google", h.ServeLogin)

	// GET /auth/callback - OAuth redirect target
	r.Get("/callback", h.ServeCallback)

	return r
}
