// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

const (
	noticeNotConfigured  = "Sign-in is not configured. Set the Google client and backend settings to enable it."
	noticeGoogleRequired = "Admin changes require a Google account session."
)

type dashboardCounts struct {
	Assignments    int64
	Agendas        int64
	Documentations int64
	Semesters      int64
	Submissions    int64
	Users          int64
}

type dashboardData struct {
	viewdata.BaseVM
	Counts  dashboardCounts
	Notices []string
}

func (h *Handler) counts(ctx context.Context) (dashboardCounts, error) {
	var c dashboardCounts
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}
	count(&c.Assignments, h.Assignments.Count)
	count(&c.Agendas, h.Agendas.Count)
	count(&c.Documentations, h.Docs.Count)
	count(&c.Semesters, h.Semesters.Count)
	count(&c.Submissions, h.Submissions.Count)
	count(&c.Users, h.Profiles.Count)
	return c, g.Wait()
}

func (h *Handler) notices(r *http.Request) []string {
	var out []string
	if !h.AuthConfigured {
		out = append(out, noticeNotConfigured)
	}
	if u, ok := auth.CurrentUser(r); ok && u.Provider != "google" {
		out = append(out, noticeGoogleRequired)
	}
	return out
}

// ServeDashboard handles GET /admin.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	counts, err := h.counts(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin counts failed", err, "Unable to load the admin dashboard.", "/")
		return
	}

	data := dashboardData{
		BaseVM:  viewdata.NewBaseVM(r, "Admin", "/"),
		Counts:  counts,
		Notices: h.notices(r),
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_dashboard", data)
}
