// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

// Routes registers /assignments and /assignment/{id} on r. Both sit behind
// the route guard.
func Routes(r chi.Router, h *Handler) {
	r.Get("/assignments", h.ServeList)
	r.Get("/assignment/{id}", h.ServeDetail)
}
