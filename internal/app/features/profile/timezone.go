// internal/app/features/profile/timezone.go
package profile

import (
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

type zoneInput struct {
	Zone string `validate:"timezone" label:"Time zone"`
}

// HandleTimezone stores the chosen IANA zone in the timezone cookie and sends
// the user back. Unknown zones leave the cookie untouched.
func (h *Handler) HandleTimezone(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/")
		return
	}

	in := zoneInput{Zone: strings.TrimSpace(r.PostFormValue("timezone"))}
	back := urlutil.SafeReturn(r.PostFormValue("return"), "", "/")

	if res := inputval.Validate(in); res.HasErrors() {
		h.Log.Debug("ignoring invalid timezone", zap.String("timezone", in.Zone), zap.String("reason", res.First()))
	} else {
		datefmt.SetCookie(w, in.Zone, h.SecureCookies)
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
