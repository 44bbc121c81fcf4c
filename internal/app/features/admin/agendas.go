// internal/app/features/admin/agendas.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	agendastore "github.com/dalemusser/humorproject/internal/app/store/agendas"
	"github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

const agendasPath = "/admin/agendas"

const (
	MsgAgendaIncomplete = "Complete all agenda fields before saving."
	MsgAgendaCreated    = "Agenda created."
	MsgAgendaUpdated    = "Agenda updated."
	MsgAgendaDeleted    = "Agenda deleted."
	MsgAgendaNotFound   = "Agenda not found."
)

type agendaInput struct {
	Title       string `validate:"notblank" label:"Title"`
	Content     string `validate:"richtext" label:"Content"`
	Location    string `validate:"notblank" label:"Location"`
	MeetingTime string `validate:"datetime" label:"Meeting time"`
	SemesterID  string `validate:"objectid" label:"Semester"`
}

func readAgenda(r *http.Request) agendaInput {
	return agendaInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Content:     r.PostFormValue("content"),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		MeetingTime: r.PostFormValue("meeting_time"),
		SemesterID:  r.PostFormValue("semester_id"),
	}
}

func (h *Handler) agenda(ctx context.Context, dates datefmt.Formatter, in agendaInput) (a models.MeetingAgenda, ok bool, err error) {
	if inputval.Validate(in).HasErrors() {
		return a, false, nil
	}
	at, ok := dates.ParseInput(in.MeetingTime)
	if !ok {
		return a, false, nil
	}
	semID, ok, err := h.semesterExists(ctx, in.SemesterID)
	if err != nil || !ok {
		return a, false, err
	}
	return models.MeetingAgenda{
		Title:       in.Title,
		Content:     in.Content,
		Location:    in.Location,
		MeetingTime: at,
		SemesterID:  semID,
	}, true, nil
}

type agendaRow struct {
	ID           string
	Title        string
	Content      string
	Location     string
	MeetingInput string
	MeetingText  string
	SemesterID   string
	Confirm      string
}

type agendasData struct {
	viewdata.BaseVM
	Semesters []semesterOption
	Rows      []agendaRow
}

func (h *Handler) agendasPage(ctx context.Context, dates datefmt.Formatter) ([]semesterOption, []agendaRow, error) {
	var (
		sems []models.Semester
		list []models.MeetingAgenda
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sems, err = h.Semesters.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		list, err = h.Agendas.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	rows := make([]agendaRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, agendaRow{
			ID:           a.ID.Hex(),
			Title:        a.Title,
			Content:      a.Content,
			Location:     a.Location,
			MeetingInput: dates.InputValue(a.MeetingTime),
			MeetingText:  dates.Long(a.MeetingTime),
			SemesterID:   a.SemesterID.Hex(),
			Confirm:      deleteConfirm("agenda", a.Title),
		})
	}
	return semesterOptions(sems), rows, nil
}

// ServeAgendas handles GET /admin/agendas.
func (h *Handler) ServeAgendas(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := agendasData{BaseVM: viewdata.NewBaseVM(r, "Manage agendas", "/admin")}
	sems, rows, err := h.agendasPage(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin agendas load failed", err, "Unable to load agendas.", "/admin")
		return
	}
	data.Semesters, data.Rows = sems, rows
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_agendas", data)
}

// HandleAgendaCreate handles POST /admin/agendas.
func (h *Handler) HandleAgendaCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", agendasPath)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	a, ok, err := h.agenda(ctx, datefmt.FromRequest(r), readAgenda(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "semester lookup failed", err, "Unable to save agenda.", agendasPath)
		return
	}
	if !ok {
		h.reject(w, r, agendasPath, MsgAgendaIncomplete)
		return
	}

	created, err := h.Agendas.Create(ctx, a)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create agenda failed", err, "Unable to save agenda.", agendasPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAgendaCreated, created.ID.Hex(), created.Title)
	h.back(w, r, agendasPath, MsgAgendaCreated)
}

// HandleAgendaSave handles POST /admin/agendas/{id}.
func (h *Handler) HandleAgendaSave(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, agendasPath, MsgAgendaNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", agendasPath)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	a, ok, err := h.agenda(ctx, datefmt.FromRequest(r), readAgenda(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "semester lookup failed", err, "Unable to save agenda.", agendasPath)
		return
	}
	if !ok {
		h.reject(w, r, agendasPath, MsgAgendaIncomplete)
		return
	}

	a.ID = id
	err = h.Agendas.Update(ctx, a)
	if errors.Is(err, agendastore.ErrNotFound) {
		h.reject(w, r, agendasPath, MsgAgendaNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update agenda failed", err, "Unable to save agenda.", agendasPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAgendaUpdated, id.Hex(), a.Title)
	h.back(w, r, agendasPath, MsgAgendaUpdated)
}

// HandleAgendaDelete handles POST /admin/agendas/{id}/delete.
func (h *Handler) HandleAgendaDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, agendasPath, MsgAgendaNotFound)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	a, err := h.Agendas.GetByID(ctx, id)
	if err == nil {
		err = h.Agendas.Delete(ctx, id)
	}
	if errors.Is(err, agendastore.ErrNotFound) {
		h.reject(w, r, agendasPath, MsgAgendaNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete agenda failed", err, "Unable to delete agenda.", agendasPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAgendaDeleted, id.Hex(), a.Title)
	h.back(w, r, agendasPath, MsgAgendaDeleted)
}
