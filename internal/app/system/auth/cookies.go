// internal/app/system/auth/cookies.go
package auth

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxChunks bounds how many ".N" cookies one session may span.
const MaxChunks = 12

// DefaultChunkSize matches the per-cookie budget browsers reliably accept
// once name and attributes are added.
const DefaultChunkSize = 3180

// ProjectRef returns the first host label of the backend URL
// ("https://abcd.example.co" -> "abcd"). It returns "" when the URL has no host.
func ProjectRef(backendURL string) string {
	u, err := url.Parse(strings.TrimSpace(backendURL))
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		return ""
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	return host
}

// CookieName returns "sb-<ref>-auth-token".
func CookieName(projectRef string) string {
	if projectRef == "" {
		projectRef = "local"
	}
	return "sb-" + projectRef + "-auth-token"
}

func chunkName(base string, i int) string {
	return base + "." + strconv.Itoa(i)
}

// readChunked returns the cookie value, reassembling ".0".."N" chunks when
// the unsplit cookie is absent.
func readChunked(r *http.Request, base string) (string, bool) {
	if c, err := r.Cookie(base); err == nil && c.Value != "" {
		return c.Value, true
	}
	var b strings.Builder
	for i := 0; i < MaxChunks; i++ {
		c, err := r.Cookie(chunkName(base, i))
		if err != nil {
			break
		}
		b.WriteString(c.Value)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// split cuts value into chunkSize pieces. It returns nil when more than
// MaxChunks would be needed.
func split(value string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	var parts []string
	for len(value) > chunkSize {
		parts = append(parts, value[:chunkSize])
		value = value[chunkSize:]
	}
	parts = append(parts, value)
	if len(parts) > MaxChunks {
		return nil
	}
	return parts
}

func (m *SessionManager) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	} else {
		c.MaxAge = int(maxAge.Seconds())
	}
	return c
}

// writeChunked stores value either as the base cookie or as ".N" chunks and
// expires whichever form is not in use.
func (m *SessionManager) writeChunked(w http.ResponseWriter, value string) error {
	parts := split(value, m.cfg.ChunkSize)
	if parts == nil {
		return ErrCookieTooLarge
	}
	base := m.cookieName
	ttl := m.cfg.RefreshTTL

	if len(parts) == 1 {
		http.SetCookie(w, m.cookie(base, value, ttl))
		for i := 0; i < MaxChunks; i++ {
			http.SetCookie(w, m.cookie(chunkName(base, i), "", -1))
		}
		return nil
	}

	http.SetCookie(w, m.cookie(base, "", -1))
	for i := 0; i < MaxChunks; i++ {
		if i < len(parts) {
			http.SetCookie(w, m.cookie(chunkName(base, i), parts[i], ttl))
		} else {
			http.SetCookie(w, m.cookie(chunkName(base, i), "", -1))
		}
	}
	return nil
}

// Clear expires the auth cookie and every chunk.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(m.cookieName, "", -1))
	for i := 0; i < MaxChunks; i++ {
		http.SetCookie(w, m.cookie(chunkName(m.cookieName, i), "", -1))
	}
}
