package datefmt_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return loc
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 5: "5th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 31: "31st", 111: "111th",
	}
	for n, want := range tests {
		if got := datefmt.Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatter_Formats(t *testing.T) {
	f := datefmt.New(newYork(t))
	ts := time.Date(2026, 1, 5, 20, 4, 0, 0, time.UTC) // 3:04 PM EST

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"long", f.Long(ts), "Monday, January 5th, 2026 at 3:04 PM EST"},
		{"due", f.Due(ts), "Monday, 1/5/2026, 3:04:00 PM"},
		{"datetime", f.DateTime(ts), "1/5/2026, 3:04:00 PM"},
		{"zoned", f.Zoned(ts), "1/5/2026, 3:04:00 PM EST"},
		{"input", f.InputValue(ts), "2026-01-05T15:04"},
		{"zero", f.Long(time.Time{}), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatter_ParseInput(t *testing.T) {
	f := datefmt.New(newYork(t))
	got, ok := f.ParseInput("2026-01-05T15:04")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if want := time.Date(2026, 1, 5, 20, 4, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseInput = %v, want %v", got, want)
	}
	if _, ok := f.ParseInput("next tuesday"); ok {
		t.Error("expected garbage to fail")
	}
	if _, ok := f.ParseInput(""); ok {
		t.Error("expected blank to fail")
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		wantZone string
	}{
		{"no cookie", "", ""},
		{"encoded valid", url.QueryEscape("America/New_York"), "America/New_York"},
		{"raw valid", "Europe/London", "Europe/London"},
		{"invalid zone falls back", "Not/AZone", ""},
		{"encoded invalid", url.QueryEscape("Not/AZone"), ""},
		{"local is not a user zone", "Local", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: datefmt.CookieName, Value: tt.cookie})
			}
			f := datefmt.FromRequest(req)
			if got := f.ZoneName(); got != tt.wantZone {
				t.Errorf("ZoneName = %q, want %q", got, tt.wantZone)
			}
			// Fallback formatting must still render.
			if f.DateTime(time.Now()) == "" {
				t.Error("expected formatted output")
			}
		})
	}
}

func TestSetCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	datefmt.SetCookie(rec, "America/New_York", false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Value != url.QueryEscape("America/New_York") {
		t.Errorf("Value = %q, want URL-encoded zone", c.Value)
	}
	if c.MaxAge != 31536000 || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("unexpected attributes: %+v", c)
	}
}
