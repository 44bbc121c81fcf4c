// internal/app/features/studies/handler.go
package studies

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/studiesapi"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MsgNoEmail is shown when the session carries no email to look studies up by.
const MsgNoEmail = "No email address is associated with this account."

// Fetcher loads a user's studies. *studiesapi.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, email string) ([]models.Study, error)
}

type Handler struct {
	Studies Fetcher
	Log     *zap.Logger
}

func NewHandler(studies Fetcher, logger *zap.Logger) *Handler {
	return &Handler{Studies: studies, Log: logger}
}

type studyRow struct {
	Slug        string
	Description string
	StartText   string
	EndText     string
	Rated       int
	Total       int
	Progress    string
	ProgressPct float64
}

type pageData struct {
	viewdata.BaseVM
	Error string
	Rows  []studyRow
}

func rowsFor(list []models.Study, dates datefmt.Formatter) []studyRow {
	rows := make([]studyRow, 0, len(list))
	for _, s := range list {
		p := s.Progress()
		rows = append(rows, studyRow{
			Slug:        s.Slug,
			Description: strings.TrimSpace(s.Description),
			StartText:   dates.Ptr(s.StartAt),
			EndText:     dates.Ptr(s.EndAt),
			Rated:       s.RatedCaptionCount,
			Total:       s.CaptionCount,
			Progress:    fmt.Sprintf("%d%%", int(math.Round(p))),
			ProgressPct: p,
		})
	}
	return rows
}

// page builds the view for the signed-in user. Failures become an inline
// message rather than an error page.
func (h *Handler) page(r *http.Request) pageData {
	data := pageData{BaseVM: viewdata.NewBaseVM(r, "Studies", "/")}

	email := ""
	if u, ok := auth.CurrentUser(r); ok {
		email = strings.TrimSpace(u.Email)
	}
	if email == "" {
		data.Error = MsgNoEmail
		return data
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	list, err := h.Studies.Fetch(ctx, email)
	if err != nil {
		h.Log.Warn("studies fetch failed", zap.Error(err), zap.String("email", email))
		data.Error = studiesapi.Message(err)
		return data
	}
	data.Rows = rowsFor(list, data.Dates)
	return data
}

// ServeStudies handles GET /studies.
func (h *Handler) ServeStudies(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "studies", h.page(r))
}

func Routes(r chi.Router, h *Handler) {
	r.Get("/studies", h.ServeStudies)
}
