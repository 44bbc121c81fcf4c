// internal/app/features/profile/complete.go
package profile

import (
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const completePath = "/complete-profile"

type completeData struct {
	viewdata.BaseVM
	Email     string
	FirstName string
	LastName  string
}

// ServeComplete asks a new user for their name. Users who already have both
// names go straight home.
func (h *Handler) ServeComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	p, _, err := h.load(ctx, user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Unable to load your profile.", "/")
		return
	}
	if p.HasFullName() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := completeData{
		BaseVM:    viewdata.NewBaseVM(r, "Complete your profile", "/"),
		Email:     user.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "complete_profile", data)
}

// HandleComplete saves the name and continues to the home page.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", completePath)
		return
	}

	in := readName(r)
	if res := inputval.Validate(in); res.HasErrors() {
		h.Flash.Error(w, r, nameError(res))
		http.Redirect(w, r, completePath, http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.Profiles.UpdateName(ctx, user.ID, in.FirstName, in.LastName); err != nil {
		h.ErrLog.LogServerError(w, r, "complete profile failed", err, "Failed to save your profile.", completePath)
		return
	}

	h.renameSession(w, r, in)
	h.Log.Info("profile completed", zap.String("user_id", user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
