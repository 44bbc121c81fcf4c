// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"go.uber.org/zap"
)

// Sessions is the part of the session manager logout needs.
type Sessions interface {
	SignOut(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	Log      *zap.Logger
	Sessions Sessions
	AuditLog *auditlog.Logger
}

func NewHandler(sessions Sessions, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Sessions: sessions,
		AuditLog: audit,
	}
}

// ServeLogout handles GET and POST /logout. It works with or without a
// valid session so stale cookies always get cleared.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.AuditLog.Logout(r.Context(), r, u.ID, u.Email)
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	h.Sessions.SignOut(w, r)

	auth.Redirect(w, r, "/login", http.StatusOK)
}
