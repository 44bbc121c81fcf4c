// internal/app/features/admin/semesters.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/store/audit"
	semesterstore "github.com/dalemusser/humorproject/internal/app/store/semesters"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const semestersPath = "/admin/semesters"

const (
	MsgSemesterIncomplete = "Enter a semester name before saving."
	MsgSemesterCreated    = "Semester created."
	MsgSemesterUpdated    = "Semester updated."
	MsgSemesterDeleted    = "Semester deleted."
	MsgSemesterNotFound   = "Semester not found."
	MsgSemesterInUse      = "This semester still has assignments or agendas. Move or delete them first."
)

type semesterRow struct {
	ID      string
	Name    string
	Confirm string
}

type semestersData struct {
	viewdata.BaseVM
	Rows []semesterRow
}

// ServeSemesters handles GET /admin/semesters.
func (h *Handler) ServeSemesters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	sems, err := h.Semesters.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin semesters load failed", err, "Unable to load semesters.", "/admin")
		return
	}
	data := semestersData{BaseVM: viewdata.NewBaseVM(r, "Manage semesters", "/admin")}
	for _, s := range sems {
		data.Rows = append(data.Rows, semesterRow{
			ID:      s.ID.Hex(),
			Name:    s.Name,
			Confirm: deleteConfirm("semester", s.Name),
		})
	}
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_semesters", data)
}

// HandleSemesterCreate handles POST /admin/semesters.
func (h *Handler) HandleSemesterCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		h.reject(w, r, semestersPath, MsgSemesterIncomplete)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	s, err := h.Semesters.Create(ctx, name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create semester failed", err, "Unable to save semester.", semestersPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventSemesterCreated, s.ID.Hex(), s.Name)
	h.back(w, r, semestersPath, MsgSemesterCreated)
}

// HandleSemesterSave handles POST /admin/semesters/{id}.
func (h *Handler) HandleSemesterSave(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, semestersPath, MsgSemesterNotFound)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		h.reject(w, r, semestersPath, MsgSemesterIncomplete)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	err := h.Semesters.Update(ctx, id, name)
	if errors.Is(err, semesterstore.ErrNotFound) {
		h.reject(w, r, semestersPath, MsgSemesterNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update semester failed", err, "Unable to save semester.", semestersPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventSemesterUpdated, id.Hex(), name)
	h.back(w, r, semestersPath, MsgSemesterUpdated)
}

// semesterInUse reports whether any assignment or agenda references id.
func (h *Handler) semesterInUse(ctx context.Context, id primitive.ObjectID) (bool, error) {
	var assignments, agendas int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assignments, err = h.Assignments.CountBySemester(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		agendas, err = h.Agendas.CountBySemester(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return assignments+agendas > 0, nil
}

// HandleSemesterDelete handles POST /admin/semesters/{id}/delete. Semesters
// still referenced by content are kept.
func (h *Handler) HandleSemesterDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, semestersPath, MsgSemesterNotFound)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	inUse, err := h.semesterInUse(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "semester usage check failed", err, "Unable to delete semester.", semestersPath)
		return
	}
	if inUse {
		h.reject(w, r, semestersPath, MsgSemesterInUse)
		return
	}

	s, err := h.Semesters.GetByID(ctx, id)
	if err == nil {
		err = h.Semesters.Delete(ctx, id)
	}
	if errors.Is(err, semesterstore.ErrNotFound) {
		h.reject(w, r, semestersPath, MsgSemesterNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete semester failed", err, "Unable to delete semester.", semestersPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventSemesterDeleted, id.Hex(), s.Name)
	h.back(w, r, semestersPath, MsgSemesterDeleted)
}
