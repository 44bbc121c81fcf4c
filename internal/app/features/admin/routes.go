// internal/app/features/admin/routes.go
package admin

import "github.com/go-chi/chi/v5"

// Routes returns the /admin router. Mount it behind the route guard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDashboard)

	r.Route("/assignments", func(r chi.Router) {
		r.Get("/", h.ServeAssignments)
		r.Post("/", h.HandleAssignmentCreate)
		r.Post("/{id}", h.HandleAssignmentSave)
		r.Post("/{id}/delete", h.HandleAssignmentDelete)
	})
	r.Route("/agendas", func(r chi.Router) {
		r.Get("/", h.ServeAgendas)
		r.Post("/", h.HandleAgendaCreate)
		r.Post("/{id}", h.HandleAgendaSave)
		r.Post("/{id}/delete", h.HandleAgendaDelete)
	})
	r.Route("/documentations", func(r chi.Router) {
		r.Get("/", h.ServeDocs)
		r.Post("/", h.HandleDocCreate)
		r.Post("/{id}", h.HandleDocSave)
		r.Post("/{id}/delete", h.HandleDocDelete)
	})
	r.Route("/semesters", func(r chi.Router) {
		r.Get("/", h.ServeSemesters)
		r.Post("/", h.HandleSemesterCreate)
		r.Post("/{id}", h.HandleSemesterSave)
		r.Post("/{id}/delete", h.HandleSemesterDelete)
	})

	r.Get("/submissions", h.ServeSubmissions)
	r.Get("/users", h.ServeUsers)
	r.Post("/users/{id}/superadmin", h.HandleSuperAdmin)
	r.Get("/audit", h.ServeAudit)
	return r
}
