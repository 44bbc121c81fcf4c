// internal/app/system/auth/session.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/app/store/authsessions"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RefreshStore persists refresh sessions. *authsessions.Store satisfies it.
type RefreshStore interface {
	Create(ctx context.Context, sess authsessions.Session) (authsessions.Session, error)
	FindActive(ctx context.Context, tokenHash string) (authsessions.Session, error)
	Rotate(ctx context.Context, id primitive.ObjectID, oldHash, newHash string) error
	Revoke(ctx context.Context, id primitive.ObjectID) error
}

// Config holds everything the session manager needs from app config.
type Config struct {
	SessionKey     string
	BackendURL     string
	CookieDomain   string
	Secure         bool
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	ChunkSize      int
	AllowedDomains []string

	// Configured is false when any required auth setting is missing.
	Configured bool
}

// SessionManager issues, reads, refreshes and clears auth cookies.
type SessionManager struct {
	cfg        Config
	cookieName string
	codec      *securecookie.SecureCookie
	signingKey []byte
	store      RefreshStore
	allowed    map[string]struct{}
	log        *zap.Logger
	now        func() time.Time
}

// cookiePayload is what the auth cookie carries.
type cookiePayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// NewSessionManager validates cfg and builds a manager.
func NewSessionManager(cfg Config, store RefreshStore, logger *zap.Logger) (*SessionManager, error) {
	if cfg.SessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(cfg.SessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(cfg.SessionKey)))
	}
	if store == nil {
		return nil, errors.New("refresh store is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	codec := securecookie.New(
		DeriveKey(cfg.SessionKey, "cookie-hash", 64),
		DeriveKey(cfg.SessionKey, "cookie-block", 32),
	)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(cfg.RefreshTTL.Seconds()))
	// Chunking handles size; the codec must not reject long values.
	codec.MaxLength(0)

	allowed := make(map[string]struct{}, len(cfg.AllowedDomains))
	for _, d := range cfg.AllowedDomains {
		d = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(d), "@")))
		if d != "" {
			allowed[d] = struct{}{}
		}
	}

	m := &SessionManager{
		cfg:        cfg,
		cookieName: CookieName(ProjectRef(cfg.BackendURL)),
		codec:      codec,
		signingKey: DeriveKey(cfg.SessionKey, "access-token", 32),
		store:      store,
		allowed:    allowed,
		log:        logger,
		now:        func() time.Time { return time.Now() },
	}

	logger.Info("auth session manager initialized",
		zap.String("cookie", m.cookieName),
		zap.Bool("configured", cfg.Configured),
		zap.Bool("secure", cfg.Secure))
	return m, nil
}

// Configured reports whether sign-in can work at all.
func (m *SessionManager) Configured() bool { return m.cfg.Configured }

// CookieName is the base auth cookie name.
func (m *SessionManager) CookieName() string { return m.cookieName }

// EmailAllowed reports whether the email's domain is allow-listed.
func (m *SessionManager) EmailAllowed(email string) bool {
	_, ok := m.allowed[EmailDomain(email)]
	return ok
}

// SignIn starts a refresh session for p and writes the auth cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, p models.Profile, provider string) (*SessionUser, error) {
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	sess, err := m.store.Create(r.Context(), authsessions.Session{
		ProfileID: p.ID,
		Email:     p.Email,
		Provider:  provider,
		TokenHash: hashToken(refresh),
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		ExpiresAt: m.now().Add(m.cfg.RefreshTTL).UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create refresh session: %w", err)
	}

	u := &SessionUser{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.DisplayName(),
		Provider:  provider,
		SessionID: sess.ID.Hex(),
	}
	if err := m.write(w, u, refresh); err != nil {
		return nil, err
	}
	return u, nil
}

// Load reads the session from r. An expired access token is refreshed and
// new cookies are written to w.
//
// A refresh rotates the refresh token, so the cookie on r is single use once
// its access token has expired. Handlers behind LoadSessionUser read the
// recorded result with LoadedSession instead of loading again.
func (m *SessionManager) Load(w http.ResponseWriter, r *http.Request) (*SessionUser, error) {
	res := m.load(w, r)
	return res.User, res.Err
}

func (m *SessionManager) load(w http.ResponseWriter, r *http.Request) LoadResult {
	payload, err := m.read(r)
	if err != nil {
		return LoadResult{Err: err}
	}

	claims, err := m.parseAccessToken(payload.AccessToken)
	if err == nil {
		return LoadResult{User: claims.user(), refresh: payload.RefreshToken}
	}
	if !errors.Is(err, jwt.ErrTokenExpired) || claims.Subject == "" {
		return LoadResult{Err: ErrInvalidRefreshToken}
	}
	return m.refresh(w, r, claims, payload.RefreshToken)
}

func (m *SessionManager) refresh(w http.ResponseWriter, r *http.Request, claims accessClaims, refresh string) LoadResult {
	ctx := r.Context()
	oldHash := hashToken(refresh)

	sess, err := m.store.FindActive(ctx, oldHash)
	if errors.Is(err, authsessions.ErrNotFound) {
		return LoadResult{Err: ErrInvalidRefreshToken}
	}
	if err != nil {
		return LoadResult{Err: fmt.Errorf("find refresh session: %w", err)}
	}
	if sess.ProfileID != claims.Subject {
		return LoadResult{Err: ErrInvalidRefreshToken}
	}

	next, err := newRefreshToken()
	if err != nil {
		return LoadResult{Err: err}
	}
	if err := m.store.Rotate(ctx, sess.ID, oldHash, hashToken(next)); err != nil {
		if errors.Is(err, authsessions.ErrNotFound) {
			return LoadResult{Err: ErrInvalidRefreshToken}
		}
		return LoadResult{Err: fmt.Errorf("rotate refresh session: %w", err)}
	}

	u := &SessionUser{
		ID:        sess.ProfileID,
		Email:     sess.Email,
		Name:      claims.Name,
		Provider:  sess.Provider,
		SessionID: sess.ID.Hex(),
	}
	if err := m.write(w, u, next); err != nil {
		return LoadResult{Err: err}
	}
	m.log.Debug("auth session refreshed", zap.String("user_id", u.ID))
	return LoadResult{User: u, refresh: next}
}

// Rename re-issues the access token for the signed-in user so the session
// carries a new display name. The refresh token is kept as is.
func (m *SessionManager) Rename(w http.ResponseWriter, r *http.Request, name string) error {
	u, ok := CurrentUser(r)
	if !ok {
		return ErrNoSession
	}
	refresh := ""
	if res, ok := LoadedSession(r.Context()); ok && res.Err == nil {
		refresh = res.refresh
	}
	if refresh == "" {
		payload, err := m.read(r)
		if err != nil {
			return err
		}
		refresh = payload.RefreshToken
	}
	next := *u
	next.Name = name
	return m.write(w, &next, refresh)
}

// SignOut revokes the refresh session when it can be identified and clears
// all auth cookies. Revocation failures are logged, never returned.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	defer m.Clear(w)

	payload, err := m.read(r)
	if err != nil {
		return
	}
	var claims accessClaims
	_, _, err = jwt.NewParser().ParseUnverified(payload.AccessToken, &claims)
	if err != nil {
		return
	}
	id, err := primitive.ObjectIDFromHex(claims.SessionID)
	if err != nil {
		return
	}
	if err := m.store.Revoke(r.Context(), id); err != nil {
		m.log.Warn("failed to revoke refresh session", zap.Error(err), zap.String("user_id", claims.Subject))
	}
}

func (m *SessionManager) read(r *http.Request) (cookiePayload, error) {
	raw, ok := readChunked(r, m.cookieName)
	if !ok {
		return cookiePayload{}, ErrNoSession
	}
	var p cookiePayload
	if err := m.codec.Decode(m.cookieName, raw, &p); err != nil {
		return cookiePayload{}, ErrInvalidRefreshToken
	}
	if p.AccessToken == "" || p.RefreshToken == "" {
		return cookiePayload{}, ErrInvalidRefreshToken
	}
	return p, nil
}

func (m *SessionManager) write(w http.ResponseWriter, u *SessionUser, refresh string) error {
	access, exp, err := m.issueAccessToken(u)
	if err != nil {
		return err
	}
	encoded, err := m.codec.Encode(m.cookieName, cookiePayload{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode auth cookie: %w", err)
	}
	return m.writeChunked(w, encoded)
}

// LoadSessionUser injects the user into context when a valid session exists.
// Invalid sessions are cleared silently; public pages keep rendering.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.cfg.Configured {
			next.ServeHTTP(w, r)
			return
		}
		res := m.load(w, r)
		ctx := withLoadResult(r.Context(), res)
		switch err := res.Err; {
		case err == nil:
			ctx = WithUser(ctx, res.User)
		case IsInvalidRefreshToken(err):
			m.Clear(w)
		case !errors.Is(err, ErrNoSession):
			m.log.Warn("failed to load auth session", zap.Error(err), zap.String("path", r.URL.Path))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP prefers the address chi's RealIP middleware already resolved.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
