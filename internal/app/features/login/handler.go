// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// MsgNotConfigured is shown when sign-in settings are missing.
const MsgNotConfigured = "Sign in is unavailable because authentication is not configured."

// maxErrorLen bounds the ?error= text echoed back on the page.
const maxErrorLen = 200

type Handler struct {
	Log        *zap.Logger
	Configured bool
}

func NewHandler(configured bool, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Configured: configured}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type pageData struct {
	viewdata.BaseVM
	Error      string
	ReturnURL  string
	Configured bool
	SignInURL  string
}

func (h *Handler) page(r *http.Request) pageData {
	data := pageData{
		BaseVM:     viewdata.NewBaseVM(r, "Login", "/"),
		Error:      cleanError(query.Get(r, "error")),
		ReturnURL:  urlutil.SafeReturn(query.Get(r, "return"), "", ""),
		Configured: h.Configured,
	}
	data.SignInURL = "/auth/google"
	if data.ReturnURL != "" {
		data.SignInURL += "?return=" + url.QueryEscape(data.ReturnURL)
	}
	if !h.Configured && data.Error == "" {
		data.Error = MsgNotConfigured
	}
	return data
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", h.page(r))
}

func cleanError(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxErrorLen {
		s = string(r[:maxErrorLen])
	}
	return s
}
