// internal/app/features/submissions/routes.go
package submissions

import "github.com/go-chi/chi/v5"

func Routes(r chi.Router, h *Handler) {
	r.Get("/submissions", h.ServeList)
	r.Post("/submissions", h.HandleCreate)
}
