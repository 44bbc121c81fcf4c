// internal/app/features/assignments/detail.go
package assignments

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MsgNotFound is shown for unknown or malformed assignment ids.
const MsgNotFound = "Assignment not found."

// timeNow is replaced in tests.
var timeNow = time.Now

type detailData struct {
	viewdata.BaseVM
	NotFound       string
	AssignmentName string
	DueText        string
	PastDue        bool
	Description    template.HTML
	HasDescription bool
}

// detail fills the view for id. found is false for unknown or malformed ids.
func (h *Handler) detail(ctx context.Context, id string, dates datefmt.Formatter, data *detailData) (found bool, err error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	a, err := h.Assignments.GetByID(ctx, oid)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	data.AssignmentName = a.Title
	data.DueText = dates.Due(a.DueDate)
	data.PastDue = a.IsPastDue(timeNow())
	data.HasDescription = richtext.HasVisibleContent(a.Description)
	if data.HasDescription {
		data.Description = richtext.Render(a.Description)
	}
	return true, nil
}

// ServeDetail handles GET /assignment/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := detailData{BaseVM: viewdata.NewBaseVM(r, "Assignment", "/assignments")}
	found, err := h.detail(ctx, chi.URLParam(r, "id"), data.Dates, &data)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load assignment failed", err, "Unable to load assignment.", "/assignments")
		return
	}
	if !found {
		data.NotFound = MsgNotFound
		w.WriteHeader(http.StatusNotFound)
	} else {
		data.Title = data.AssignmentName
	}

	templates.Render(w, r, "assignment_detail", data)
}
