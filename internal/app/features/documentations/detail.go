// internal/app/features/documentations/detail.go
package documentations

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	docstore "github.com/dalemusser/humorproject/internal/app/store/documentations"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type detailData struct {
	viewdata.BaseVM
	NotFound    string
	DocTitle    string
	UpdatedText string
	Content     template.HTML
	HasContent  bool
}

func (h *Handler) detail(ctx context.Context, id string, dates datefmt.Formatter, data *detailData) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	d, err := h.Docs.GetByID(ctx, oid)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	data.DocTitle = titleOrDefault(strings.TrimSpace(d.Title))
	data.UpdatedText = dates.Long(d.LastUpdated())
	data.HasContent = richtext.HasVisibleContent(d.Content)
	if data.HasContent {
		data.Content = richtext.Render(d.Content)
	}
	return true, nil
}

// ServeDetail handles GET /documentation/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := detailData{BaseVM: viewdata.NewBaseVM(r, "Documentation", "/documentations")}
	found, err := h.detail(ctx, chi.URLParam(r, "id"), data.Dates, &data)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load documentation failed", err, "Unable to load documentation.", "/documentations")
		return
	}
	if !found {
		data.NotFound = MsgNotFound
		w.WriteHeader(http.StatusNotFound)
	} else {
		data.Title = data.DocTitle
	}

	templates.Render(w, r, "documentation_detail", data)
}
