// internal/app/system/auth/tokens.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/sha3"
)

// accessClaims is the JWT body of an access token.
type accessClaims struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Provider  string `json:"provider"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c accessClaims) user() *SessionUser {
	return &SessionUser{
		ID:        c.Subject,
		Email:     c.Email,
		Name:      c.Name,
		Provider:  c.Provider,
		SessionID: c.SessionID,
	}
}

func (m *SessionManager) issueAccessToken(u *SessionUser) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.cfg.AccessTTL)
	claims := accessClaims{
		Email:     u.Email,
		Name:      u.Name,
		Provider:  u.Provider,
		SessionID: u.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

// parseAccessToken verifies signature and expiry. An expired token still
// returns its claims together with an error matching jwt.ErrTokenExpired.
func (m *SessionManager) parseAccessToken(raw string) (accessClaims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return m.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	return claims, err
}

// newRefreshToken returns 32 random bytes, base64url encoded.
func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken is the stored form of a refresh token.
func hashToken(token string) string {
	sum := sha3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// DeriveKey stretches the configured secret into a purpose-bound key.
func DeriveKey(secret, purpose string, size int) []byte {
	out := make([]byte, size)
	sha3.ShakeSum256(out, []byte(purpose+":"+secret))
	return out
}
