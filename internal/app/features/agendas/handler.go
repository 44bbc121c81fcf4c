// internal/app/features/agendas/handler.go
package agendas

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	agendastore "github.com/dalemusser/humorproject/internal/app/store/agendas"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/richtext"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultTitle = "Untitled agenda"

type Handler struct {
	Agendas *agendastore.Store
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Agendas: agendastore.New(db),
		ErrLog:  errLog,
		Log:     logger,
	}
}

type agendaItem struct {
	Title       string
	Location    string
	MeetingText string
	Content     template.HTML
	HasContent  bool
}

type listData struct {
	viewdata.BaseVM
	Items []agendaItem
}

func (h *Handler) items(ctx context.Context, dates datefmt.Formatter) ([]agendaItem, error) {
	list, err := h.Agendas.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]agendaItem, 0, len(list))
	for _, a := range list {
		it := agendaItem{
			Title:       strings.TrimSpace(a.Title),
			Location:    strings.TrimSpace(a.Location),
			MeetingText: dates.Long(a.MeetingTime),
			HasContent:  richtext.HasVisibleContent(a.Content),
		}
		if it.Title == "" {
			it.Title = defaultTitle
		}
		if it.HasContent {
			it.Content = richtext.Render(a.Content)
		}
		items = append(items, it)
	}
	return items, nil
}

// ServeList handles GET /meeting-agendas.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := listData{BaseVM: viewdata.NewBaseVM(r, "Meeting Agendas", "/")}
	items, err := h.items(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list agendas failed", err, "Unable to load meeting agendas.", "/")
		return
	}
	data.Items = items

	templates.Render(w, r, "agendas_list", data)
}

// Routes registers GET /meeting-agendas.
func Routes(r chi.Router, h *Handler) {
	r.Get("/meeting-agendas", h.ServeList)
}
