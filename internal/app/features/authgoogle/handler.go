// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/guard"
	"github.com/dalemusser/humorproject/internal/app/system/ratelimit"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Messages passed to /login?error=.
const (
	MsgFailed       = "Failed to sign in"
	MsgNoCode       = "No code provided"
	MsgUserInfo     = "Failed to get user information"
	MsgProfileError = "Error checking user profile"
	MsgRateLimited  = "Too many sign-in attempts. Please wait a minute and try again."
)

// DefaultUserInfo is Google's userinfo endpoint.
const DefaultUserInfo = "https://www.googleapis.com/oauth2/v2/userinfo"

const (
	stateTTL        = 10 * time.Minute
	providerGoogle  = "google"
	completeProfile = "/complete-profile"
)

// Sessions is the part of the session manager sign-in needs.
type Sessions interface {
	Configured() bool
	EmailAllowed(email string) bool
	SignIn(w http.ResponseWriter, r *http.Request, p models.Profile, provider string) (*auth.SessionUser, error)
}

// Profiles finds or creates the profile for a signed-in email.
type Profiles interface {
	EnsureForSignIn(ctx context.Context, email string) (models.Profile, error)
}

// States stores one-time OAuth state values. *oauthstate.Store satisfies it.
type States interface {
	Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error
	Consume(ctx context.Context, state string) (returnURL string, valid bool, err error)
}

// Config carries the OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // callback is BaseURL + "/auth/callback"

	// Endpoint and UserInfoURL default to Google's.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// Handler handles Google OAuth authentication.
type Handler struct {
	Log      *zap.Logger
	Sessions Sessions
	Profiles Profiles
	States   States
	Limiter  *ratelimit.SignInLimiter
	AuditLog *auditlog.Logger

	oauth       *oauth2.Config
	userInfoURL string
}

// NewHandler creates a new Google OAuth handler. limiter and audit may be nil.
func NewHandler(cfg Config, sessions Sessions, profiles Profiles, states States, limiter *ratelimit.SignInLimiter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = google.Endpoint
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = DefaultUserInfo
	}
	return &Handler{
		Log:      logger,
		Sessions: sessions,
		Profiles: profiles,
		States:   states,
		Limiter:  limiter,
		AuditLog: audit,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  strings.TrimRight(cfg.BaseURL, "/") + "/auth/callback",
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: cfg.Endpoint,
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

// IsConfigured returns true if both the OAuth client and the session
// manager are configured.
func (h *Handler) IsConfigured() bool {
	return h.oauth.ClientID != "" && h.oauth.ClientSecret != "" && h.Sessions.Configured()
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, guard.LoginURL(msg), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Starts the OAuth flow by redirecting to Google's consent screen.             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(r) {
		h.Log.Warn("sign-in rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		h.AuditLog.LoginRateLimited(r.Context(), r)
		h.fail(w, r, MsgRateLimited)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		h.fail(w, r, MsgFailed)
		return
	}

	returnURL := urlutil.SafeReturn(query.Get(r, "return"), "", "")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.States.Save(ctx, state, returnURL, time.Now().UTC().Add(stateTTL)); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		h.fail(w, r, MsgFailed)
		return
	}

	url := h.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	h.Log.Debug("initiating Google OAuth flow", zap.String("return_url", returnURL))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/callback                                                           |
| Exchanges the code, checks the email domain, upserts the profile and         |
| starts a session.                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", q.Get("error_description")))
		h.AuditLog.LoginFailed(ctx, r, "", "provider_error")
		h.fail(w, r, MsgFailed)
		return
	}

	state := q.Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		h.fail(w, r, MsgFailed)
		return
	}

	stateCtx, cancel := timeouts.WithShort(ctx)
	returnURL, valid, err := h.States.Consume(stateCtx, state)
	cancel()
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		h.fail(w, r, MsgFailed)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		h.AuditLog.LoginFailed(ctx, r, "", "invalid_state")
		h.fail(w, r, MsgFailed)
		return
	}

	code := q.Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		h.fail(w, r, MsgNoCode)
		return
	}

	exCtx, cancel := timeouts.WithMedium(ctx)
	defer cancel()

	token, err := h.oauth.Exchange(exCtx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		h.AuditLog.LoginFailed(ctx, r, "", "token_exchange")
		h.fail(w, r, MsgFailed)
		return
	}

	info, err := h.fetchUserInfo(exCtx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		h.fail(w, r, MsgUserInfo)
		return
	}

	if !h.Sessions.EmailAllowed(info.Email) {
		h.Log.Info("Google OAuth: email domain rejected", zap.String("email", info.Email))
		h.AuditLog.LoginRejectedDomain(ctx, r, info.Email)
		h.fail(w, r, auth.MsgDomainRejected)
		return
	}
	if !info.EmailVerified {
		h.Log.Info("Google OAuth: email not verified", zap.String("email", info.Email))
		h.AuditLog.LoginFailed(ctx, r, info.Email, "email_not_verified")
		h.fail(w, r, MsgFailed)
		return
	}

	profile, err := h.Profiles.EnsureForSignIn(exCtx, info.Email)
	if err != nil {
		h.Log.Error("profile upsert failed", zap.Error(err), zap.String("email", info.Email))
		h.fail(w, r, MsgProfileError)
		return
	}

	if _, err := h.Sessions.SignIn(w, r, profile, providerGoogle); err != nil {
		h.Log.Error("session create failed", zap.Error(err), zap.String("user_id", profile.ID))
		h.AuditLog.LoginFailed(ctx, r, info.Email, "session_create")
		h.fail(w, r, MsgFailed)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, profile.ID, profile.Email, providerGoogle)
	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", profile.ID),
		zap.String("email", profile.Email))

	if !profile.HasFullName() {
		http.Redirect(w, r, completeProfile, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Google user info                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

var errNoEmail = errors.New("user info has no email")

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.oauth.Client(ctx, token)

	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	info.Email = strings.TrimSpace(info.Email)
	if info.Email == "" {
		return nil, errNoEmail
	}
	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
