// internal/app/features/admin/assignments.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	"github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/txn"
	"github.com/dalemusser/humorproject/internal/app/system/viewdata"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const assignmentsPath = "/admin/assignments"

const (
	MsgAssignmentIncomplete = "Complete all assignment fields before saving."
	MsgAssignmentCreated    = "Assignment created."
	MsgAssignmentUpdated    = "Assignment updated."
	MsgAssignmentDeleted    = "Assignment deleted."
	MsgAssignmentNotFound   = "Assignment not found."
)

type assignmentInput struct {
	Title       string `validate:"notblank" label:"Title"`
	Description string `validate:"richtext" label:"Description"`
	DueDate     string `validate:"datetime" label:"Due date"`
	SemesterID  string `validate:"objectid" label:"Semester"`
}

func readAssignment(r *http.Request) assignmentInput {
	return assignmentInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		DueDate:     r.PostFormValue("due_date"),
		SemesterID:  r.PostFormValue("semester_id"),
	}
}

// assignment validates in and builds the model. ok is false when any field is
// missing or the semester does not exist.
func (h *Handler) assignment(ctx context.Context, dates datefmt.Formatter, in assignmentInput) (a models.Assignment, ok bool, err error) {
	if inputval.Validate(in).HasErrors() {
		return a, false, nil
	}
	due, ok := dates.ParseInput(in.DueDate)
	if !ok {
		return a, false, nil
	}
	semID, ok, err := h.semesterExists(ctx, in.SemesterID)
	if err != nil || !ok {
		return a, false, err
	}
	return models.Assignment{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     due,
		SemesterID:  semID,
	}, true, nil
}

type assignmentRow struct {
	ID          string
	Title       string
	Description string
	DueInput    string
	DueText     string
	SemesterID  string
	Confirm     string
}

type assignmentsData struct {
	viewdata.BaseVM
	Semesters []semesterOption
	Rows      []assignmentRow
}

func (h *Handler) assignmentsPage(ctx context.Context, dates datefmt.Formatter) ([]semesterOption, []assignmentRow, error) {
	var (
		sems []models.Semester
		list []models.Assignment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sems, err = h.Semesters.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		list, err = h.Assignments.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	rows := make([]assignmentRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, assignmentRow{
			ID:          a.ID.Hex(),
			Title:       a.Title,
			Description: a.Description,
			DueInput:    dates.InputValue(a.DueDate),
			DueText:     dates.Due(a.DueDate),
			SemesterID:  a.SemesterID.Hex(),
			Confirm:     deleteConfirm("assignment", a.Title),
		})
	}
	return semesterOptions(sems), rows, nil
}

// ServeAssignments handles GET /admin/assignments.
func (h *Handler) ServeAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	data := assignmentsData{BaseVM: viewdata.NewBaseVM(r, "Manage assignments", "/admin")}
	sems, rows, err := h.assignmentsPage(ctx, data.Dates)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin assignments load failed", err, "Unable to load assignments.", "/admin")
		return
	}
	data.Semesters, data.Rows = sems, rows
	data.BaseVM = data.WithFlashes(w, r, h.Flash)

	templates.Render(w, r, "admin_assignments", data)
}

// HandleAssignmentCreate handles POST /admin/assignments.
func (h *Handler) HandleAssignmentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", assignmentsPath)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	a, ok, err := h.assignment(ctx, datefmt.FromRequest(r), readAssignment(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "semester lookup failed", err, "Unable to save assignment.", assignmentsPath)
		return
	}
	if !ok {
		h.reject(w, r, assignmentsPath, MsgAssignmentIncomplete)
		return
	}

	created, err := h.Assignments.Create(ctx, a)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create assignment failed", err, "Unable to save assignment.", assignmentsPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAssignmentCreated, created.ID.Hex(), created.Title)
	h.back(w, r, assignmentsPath, MsgAssignmentCreated)
}

// HandleAssignmentSave handles POST /admin/assignments/{id}.
func (h *Handler) HandleAssignmentSave(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, assignmentsPath, MsgAssignmentNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", assignmentsPath)
		return
	}
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	a, ok, err := h.assignment(ctx, datefmt.FromRequest(r), readAssignment(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "semester lookup failed", err, "Unable to save assignment.", assignmentsPath)
		return
	}
	if !ok {
		h.reject(w, r, assignmentsPath, MsgAssignmentIncomplete)
		return
	}

	a.ID = id
	err = h.Assignments.Update(ctx, a)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		h.reject(w, r, assignmentsPath, MsgAssignmentNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update assignment failed", err, "Unable to save assignment.", assignmentsPath)
		return
	}
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAssignmentUpdated, id.Hex(), a.Title)
	h.back(w, r, assignmentsPath, MsgAssignmentUpdated)
}

// HandleAssignmentDelete handles POST /admin/assignments/{id}/delete. The
// assignment's submissions go with it.
func (h *Handler) HandleAssignmentDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.reject(w, r, assignmentsPath, MsgAssignmentNotFound)
		return
	}
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, id)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		h.reject(w, r, assignmentsPath, MsgAssignmentNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load assignment failed", err, "Unable to delete assignment.", assignmentsPath)
		return
	}

	var removed int64
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		n, err := h.Submissions.DeleteByAssignment(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return h.Assignments.Delete(ctx, id)
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete assignment failed", err, "Unable to delete assignment.", assignmentsPath)
		return
	}

	h.Log.Info("assignment deleted",
		zap.String("assignment_id", id.Hex()),
		zap.Int64("submissions_removed", removed))
	h.AuditLog.ContentChanged(ctx, r, actorID(r), audit.EventAssignmentDeleted, id.Hex(), a.Title)
	h.back(w, r, assignmentsPath, MsgAssignmentDeleted)
}
