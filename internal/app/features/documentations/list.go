// internal/app/features/documentations/list.go
package documentations

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

const previewLen = 200

type docRow struct {
	Title       string
	URL         string
	Preview     string
	UpdatedText string
}

type listData struct {
	viewdata.BaseVM
	Rows []docRow
}

func (h *Handler) rows(ctx context.Context, dates datefmt.Formatter) ([]docRow, error) {
	docs, err := h.Docs.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]docRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, docRow{
			Title:       titleOrDefault(strings.TrimSpace(d.Title)),
			URL:         "/documentation/" + d.ID.Hex(),
			Preview:     richtext.Preview(richtext.DecodeEntities(richtext.StripHTML(d.Content)), previewLen),
			UpdatedText: dates.Long(d.LastUpdated()),
		})
	}
	return rows, nil
}

// ServeList handles GET /documentations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Documentation", "/")}
	rows, err := h.rows(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list documentation failed", err, "Unable to load documentation.", "/")
		return
	}
	data.Rows = rows

	templates.Render(w, r, "documentations_list", data)
}
