// internal/app/features/documentations/routes.go
package documentations

import "github.com/go-chi/chi/v5"

func Routes(r chi.Router, h *Handler) {
	r.Get("/documentations", h.ServeList)
	r.Get("/documentation/{id}", h.ServeDetail)
}
