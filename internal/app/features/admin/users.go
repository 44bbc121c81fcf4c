// internal/app/features/admin/users.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const usersPath = "/admin/users"

const (
	MsgSearchEmpty     = "Enter a name or email to search."
	MsgNoResults       = "No users found for this search."
	MsgSearchPrompt    = "Search for a user to see results."
	MsgGranted         = "User granted superadmin access."
	MsgRevoked         = "Superadmin access revoked."
	MsgCannotRevokeOwn = "You cannot revoke your own superadmin access."
	MsgUserNotFound    = "User not found."
)

const unnamedUser = "Unnamed user"

type userRow struct {
	ID           string
	Name         string
	Email        string
	IsSuperAdmin bool
	IsSelf       bool
	CreatedText  string
}

type usersData struct {
	viewdata.BaseVM
	Query    string
	Searched bool
	Notice   string
	Rows     []userRow
}

// normalizeSearch replaces commas with spaces and trims.
func normalizeSearch(q string) string {
	return strings.TrimSpace(strings.ReplaceAll(q, ",", " "))
}

func (h *Handler) usersPage(ctx context.Context, r *http.Request, data *usersData) error {
	data.Searched = r.URL.Query().Has("q")
	if !data.Searched {
		data.Notice = MsgSearchPrompt
		return nil
	}
	term := normalizeSearch(query.Get(r, "q"))
	data.Query = term
	if term == "" {
		data.Notice = MsgSearchEmpty
		return nil
	}

	list, err := h.Profiles.Search(ctx, term, profilestore.DefaultSearchLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		data.Notice = MsgNoResults
		return nil
	}
	for _, p := range list {
		name := p.DisplayName()
		if name == "" {
			name = unnamedUser
		}
		data.Rows = append(data.Rows, userRow{
			ID:           p.ID,
			Name:         name,
			Email:        p.Email,
			IsSuperAdmin: p.IsSuperAdmin,
			IsSelf:       p.ID == data.UserID,
			CreatedText:  data.Dates.Long(p.CreatedAt),
		})
	}
	return nil
}

// ServeUsers handles GET /admin/users?q=.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := usersData{BaseVM: viewdata.NewBaseVM(r, "Users", "/admin")}
	if err := h.usersPage(ctx, r, &data); err != nil {
		h.ErrLog.LogServerError(w, r, "user search failed", err, "Unable to search users.", "/admin")
		return
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_users", data)
}

// HandleSuperAdmin handles POST /admin/users/{id}/superadmin. The form posts
// grant=true or grant=false and the current search in q.
func (h *Handler) HandleSuperAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	grant := r.FormValue("grant") == "true"

	ret := usersPath
	if q := normalizeSearch(r.FormValue("q")); q != "" {
		ret += "?q=" + url.QueryEscape(q)
	}

	actor := actorID(r)
	if !grant && id == actor {
		h.reject(w, r, ret, MsgCannotRevokeOwn)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	p, err := h.Profiles.GetByID(ctx, id)
	if err == nil {
		err = h.Profiles.SetSuperAdmin(ctx, id, grant)
	}
	if errors.Is(err, profilestore.ErrNotFound) {
		h.reject(w, r, ret, MsgUserNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "set superadmin failed", err, "Unable to update user.", usersPath)
		return
	}

	h.Log.Info("superadmin changed",
		zap.String("actor_id", actor),
		zap.String("user_id", id),
		zap.Bool("granted", grant))
	h.AuditLog.SuperAdminChanged(ctx, r, actor, id, p.Email, grant)

	if grant {
		h.back(w, r, ret, MsgGranted)
		return
	}
	h.back(w, r, ret, MsgRevoked)
}
