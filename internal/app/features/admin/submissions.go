// internal/app/features/admin/submissions.go
package admin

import (
	"context"
	"net/http"
	"strings"

	submissionstore "github.com/dalemusser/humorproject/internal/app/store/submissions"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

const submissionPreviewLen = 160

const (
	unknownStudent = "Unknown student"
	noContent      = "No content submitted."
)

type submissionRow struct {
	Student     string
	Email       string
	Assignment  string
	Preview     string
	CreatedText string
}

type submissionsData struct {
	viewdata.BaseVM
	Rows []submissionRow
}

// studentName is "First Last", else the email, else unknownStudent.
func studentName(d submissionstore.Detail) string {
	if name := strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName)); name != "" {
		return name
	}
	if email := strings.TrimSpace(d.Email); email != "" {
		return email
	}
	return unknownStudent
}

func submissionPreview(content string) string {
	text := richtext.DecodeEntities(richtext.StripHTML(content))
	if strings.TrimSpace(text) == "" {
		return noContent
	}
	return richtext.Preview(text, submissionPreviewLen)
}

func (h *Handler) submissionRows(ctx context.Context, dates datefmt.Formatter) ([]submissionRow, error) {
	details, err := h.Submissions.ListWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]submissionRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, submissionRow{
			Student:     studentName(d),
			Email:       d.Email,
			Assignment:  d.AssignmentTitle,
			Preview:     submissionPreview(d.Content),
			CreatedText: dates.Long(d.CreatedAt),
		})
	}
	return rows, nil
}

// ServeSubmissions handles GET /admin/submissions.
func (h *Handler) ServeSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	data := submissionsData{BaseVM: viewdata.NewBaseVM(r, "Submissions", "/admin")}
	rows, err := h.submissionRows(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin submissions load failed", err, "Unable to load submissions.", "/admin")
		return
	}
	data.Rows = rows

	templates.Render(w, r, "admin_submissions", data)
}
