// internal/app/system/guard/guard.go
package guard

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"go.uber.org/zap"
)

// Sessions is the part of the session manager the guard needs.
type Sessions interface {
	Configured() bool
	Load(w http.ResponseWriter, r *http.Request) (*auth.SessionUser, error)
	EmailAllowed(email string) bool
	SignOut(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter)
}

// Roles resolves the superadmin flag.
type Roles interface {
	IsSuperAdmin(ctx context.Context, profileID string) bool
}

// Guard protects routes that need a signed-in, allow-listed user.
type Guard struct {
	sessions Sessions
	roles    Roles
	audit    *auditlog.Logger
	log      *zap.Logger
}

// New creates a Guard. audit may be nil.
func New(sessions Sessions, roles Roles, audit *auditlog.Logger, logger *zap.Logger) *Guard {
	return &Guard{sessions: sessions, roles: roles, audit: audit, log: logger}
}

// LoginURL builds /login with an optional error message.
func LoginURL(errMsg string) string {
	if errMsg == "" {
		return "/login"
	}
	return "/login?error=" + url.QueryEscape(errMsg)
}

// IsAdminPath reports whether path is /admin or below it.
func IsAdminPath(path string) bool {
	return path == "/admin" || strings.HasPrefix(path, "/admin/")
}

// Require runs the checkpoints in order: auth configured, session present,
// email domain allowed, and superadmin for /admin paths. On success the user,
// with the superadmin flag resolved, is in the request context.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.sessions.Configured() {
			auth.Redirect(w, r, LoginURL(""), http.StatusUnauthorized)
			return
		}

		u, err := g.load(w, r)
		if err != nil {
			if auth.IsInvalidRefreshToken(err) {
				g.sessions.Clear(w)
				g.audit.SessionExpired(r.Context(), r)
				auth.Redirect(w, r, LoginURL(auth.MsgSessionExpired), http.StatusUnauthorized)
				return
			}
			if !errors.Is(err, auth.ErrNoSession) {
				g.log.Warn("auth session load failed", zap.Error(err), zap.String("path", r.URL.Path))
			}
			auth.Redirect(w, r, loginWithReturn(r), http.StatusUnauthorized)
			return
		}

		if !g.sessions.EmailAllowed(u.Email) {
			g.sessions.SignOut(w, r)
			g.audit.SessionDomainRevoked(r.Context(), r, u.ID, u.Email)
			auth.Redirect(w, r, LoginURL(auth.MsgDomainRejected), http.StatusUnauthorized)
			return
		}

		resolved := *u
		resolved.IsSuperAdmin = g.roles.IsSuperAdmin(r.Context(), u.ID)

		if IsAdminPath(r.URL.Path) && !resolved.IsSuperAdmin {
			auth.Redirect(w, r, "/access-denied", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), &resolved)))
	})
}

// load reuses what LoadSessionUser already found. Loading a second time
// would present a refresh token that the first load has rotated away.
func (g *Guard) load(w http.ResponseWriter, r *http.Request) (*auth.SessionUser, error) {
	if res, ok := auth.LoadedSession(r.Context()); ok {
		return res.User, res.Err
	}
	return g.sessions.Load(w, r)
}

func loginWithReturn(r *http.Request) string {
	if r.Method != http.MethodGet {
		return LoginURL("")
	}
	return "/login?return=" + url.QueryEscape(r.URL.RequestURI())
}
