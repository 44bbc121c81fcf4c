// internal/app/system/datefmt/datefmt.go
package datefmt

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without /usr/share/zoneinfo
)

// CookieName holds the URL-encoded IANA zone chosen by the user.
const CookieName = "timezone"

// CookieMaxAge is one year.
const CookieMaxAge = 365 * 24 * time.Hour

// Resolve decodes a cookie value and loads it as an IANA zone.
// ok is false for empty or unknown names.
func Resolve(value string) (*time.Location, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}
	if decoded, err := url.QueryUnescape(value); err == nil {
		value = decoded
	}
	// LoadLocation("") and "Local" mean the server zone, not a user choice.
	if value == "" || value == "Local" {
		return nil, false
	}
	loc, err := time.LoadLocation(value)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// Valid reports whether name is a loadable IANA zone.
func Valid(name string) bool {
	_, ok := Resolve(name)
	return ok
}

// SetCookie stores zone for a year.
func SetCookie(w http.ResponseWriter, zone string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(zone),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Formatter renders times in one location.
type Formatter struct {
	loc      *time.Location
	fromUser bool
}

// New returns a Formatter for loc; nil means the server default.
func New(loc *time.Location) Formatter {
	if loc == nil {
		return Formatter{loc: time.Local}
	}
	return Formatter{loc: loc, fromUser: true}
}

// FromRequest resolves the timezone cookie, falling back to the server default.
func FromRequest(r *http.Request) Formatter {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return New(nil)
	}
	loc, ok := Resolve(c.Value)
	if !ok {
		return New(nil)
	}
	return New(loc)
}

// ZoneName is the selected IANA name, or "" when the default is in use.
func (f Formatter) ZoneName() string {
	if !f.fromUser {
		return ""
	}
	return f.loc.String()
}

func (f Formatter) in(t time.Time) time.Time {
	if f.loc == nil {
		return t.Local()
	}
	return t.In(f.loc)
}

// Long renders "Monday, January 5th, 2026 at 3:04 PM EST".
func (f Formatter) Long(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = f.in(t)
	return t.Format("Monday, January ") + Ordinal(t.Day()) + t.Format(", 2006 at 3:04 PM MST")
}

// Due renders "Monday, 1/5/2026, 3:04:00 PM".
func (f Formatter) Due(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = f.in(t)
	return t.Format("Monday, ") + f.DateTime(t)
}

// DateTime renders "1/5/2026, 3:04:00 PM".
func (f Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return f.in(t).Format("1/2/2006, 3:04:05 PM")
}

// Zoned renders "1/5/2026, 3:04:00 PM EST".
func (f Formatter) Zoned(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return f.in(t).Format("1/2/2006, 3:04:05 PM MST")
}

// Ptr is DateTime for optional timestamps.
func (f Formatter) Ptr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.DateTime(*t)
}

// InputValue renders t for an <input type="datetime-local">.
func (f Formatter) InputValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return f.in(t).Format("2006-01-02T15:04")
}

// ParseInput reads an <input type="datetime-local"> value in the formatter's zone.
func (f Formatter) ParseInput(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Ordinal renders 1st, 2nd, 3rd, 4th, 11th, 12th, 13th, 21st, ...
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
