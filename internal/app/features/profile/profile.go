// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/timezones"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// profileData is the view model for the profile page.
type profileData struct {
	viewdata.BaseVM

	Email     string
	FirstName string
	LastName  string

	ZoneGroups []timezones.ZoneGroup
}

type nameInput struct {
	FirstName string `validate:"notblank,max=100" label:"First name"`
	LastName  string `validate:"notblank,max=100" label:"Last name"`
}

// nameError prefers the spelled-out prompt for missing names over the
// per-field rule message.
func nameError(res *inputval.Result) string {
	for _, e := range res.Errors {
		if e.Tag == "notblank" {
			return MsgNameRequired
		}
	}
	return res.First()
}

func readName(r *http.Request) nameInput {
	return nameInput{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
	}
}

// renameSession puts the saved name into the session cookie. Failure only
// leaves the old name showing, so it is logged and not surfaced.
func (h *Handler) renameSession(w http.ResponseWriter, r *http.Request, in nameInput) {
	if h.Sessions == nil {
		return
	}
	name := models.Profile{FirstName: in.FirstName, LastName: in.LastName}.DisplayName()
	if err := h.Sessions.Rename(w, r, name); err != nil {
		h.Log.Warn("session rename failed", zap.Error(err))
	}
}

func (h *Handler) load(ctx context.Context, id string) (models.Profile, bool, error) {
	p, err := h.Profiles.GetByID(ctx, id)
	if errors.Is(err, profilestore.ErrNotFound) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	return p, true, nil
}

// ServeProfile renders the user's profile page.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	p, found, err := h.load(ctx, user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Unable to load your profile.", "/")
		return
	}
	if !found {
		p = models.Profile{Email: user.Email}
	}

	data := profileData{
		BaseVM:    viewdata.NewBaseVM(r, "Profile", "/"),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	groups, err := timezones.Groups()
	if err != nil {
		h.Log.Warn("timezone list unavailable", zap.Error(err))
	}
	data.ZoneGroups = groups

	templates.Render(w, r, "profile", data)
}

// HandleUpdate saves the first and last name from the profile form.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	in := readName(r)
	if res := inputval.Validate(in); res.HasErrors() {
		h.Flash.Error(w, r, nameError(res))
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.Profiles.UpdateName(ctx, user.ID, in.FirstName, in.LastName); err != nil {
		h.ErrLog.LogServerError(w, r, "update profile failed", err, "Failed to save your profile.", "/profile")
		return
	}

	h.renameSession(w, r, in)
	h.Log.Info("profile updated", zap.String("user_id", user.ID))
	h.Flash.Success(w, r, MsgUpdated)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
