// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNoSession means the request carries no auth cookie.
	ErrNoSession = errors.New("no auth session")
	// ErrInvalidRefreshToken means the cookie could not be decoded or its
	// refresh session is unknown, expired, revoked or already rotated.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrNotConfigured means auth settings are incomplete.
	ErrNotConfigured = errors.New("auth is not configured")
	// ErrCookieTooLarge means the encoded session does not fit in the chunk budget.
	ErrCookieTooLarge = errors.New("auth cookie too large")
)

// Messages shown on the login page.
const (
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgDomainRejected = "Please sign in with your Columbia or Barnard email."
)

// IsInvalidRefreshToken reports whether err means the refresh token can no
// longer be used. Messages returned by the hosted auth backend are matched too.
func IsInvalidRefreshToken(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidRefreshToken) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Invalid Refresh Token") ||
		strings.Contains(msg, "Refresh Token Not Found")
}

// SessionUser is the signed-in user carried in r.Context().
type SessionUser struct {
	ID        string
	Email     string
	Name      string
	Provider  string
	SessionID string

	// IsSuperAdmin is resolved per request by the route guard. It is never
	// stored in the cookie.
	IsSuperAdmin bool
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	loadResultKey  ctxKey = "loadResult"
)

// LoadResult is what LoadSessionUser found for a request: a user, or the
// error Load returned.
type LoadResult struct {
	User *SessionUser
	Err  error

	refresh string
}

func withLoadResult(ctx context.Context, res LoadResult) context.Context {
	return context.WithValue(ctx, loadResultKey, res)
}

// LoadedSession returns the result LoadSessionUser recorded. ok is false
// when the middleware did not run for this request.
func LoadedSession(ctx context.Context) (LoadResult, bool) {
	res, ok := ctx.Value(loadResultKey).(LoadResult)
	return res, ok
}

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// WithTestUser injects u into the request without cookies. Tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}

// IsHTMX reports whether r came from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Redirect sends the browser to dest. HTMX requests get HX-Redirect with
// hxStatus so the full page swaps instead of a partial. Every other request
// gets a plain 303 regardless of hxStatus.
func Redirect(w http.ResponseWriter, r *http.Request, dest string, hxStatus int) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(hxStatus)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// EmailDomain returns the lower-cased part after the last "@", or "".
func EmailDomain(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}
