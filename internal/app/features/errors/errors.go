// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// MsgAdminRequired is shown on /access-denied.
const MsgAdminRequired = "Admin access requires a superadmin account."

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
	Status  int
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// AccessDenied renders the page non-superadmins land on from /admin.
// GET /access-denied
func (h *Handler) AccessDenied(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, MsgAdminRequired, "/")
}

// NotFound renders a friendly 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, http.StatusNotFound, "Page not found", "We couldn't find that page.", "/")
}

// RenderForbidden shows the access denied page with msg.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	RenderError(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// RenderError renders the shared error page with the given status.
func RenderError(w http.ResponseWriter, r *http.Request, status int, heading, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, heading, backURL),
		Heading: heading,
		Message: msg,
		Status:  status,
	}
	data.BackURL = backURL
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
