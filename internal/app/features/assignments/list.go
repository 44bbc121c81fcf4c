// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type assignmentRow struct {
	ID      string
	Title   string
	DueText string
	PastDue bool
	URL     string
}

type listData struct {
	viewdata.BaseVM
	Rows []assignmentRow
}

func (h *Handler) rows(ctx context.Context, dates datefmt.Formatter) ([]assignmentRow, error) {
	list, err := h.Assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	rows := make([]assignmentRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, assignmentRow{
			ID:      a.ID.Hex(),
			Title:   a.Title,
			DueText: dates.Due(a.DueDate),
			PastDue: a.IsPastDue(now),
			URL:     "/assignment/" + a.ID.Hex(),
		})
	}
	return rows, nil
}

// ServeList handles GET /assignments.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Assignments", "/")}
	rows, err := h.rows(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list assignments failed", err, "Unable to load assignments.", "/")
		return
	}
	data.Rows = rows

	templates.Render(w, r, "assignments_list", data)
}
