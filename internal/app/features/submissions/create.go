// internal/app/features/submissions/create.go
package submissions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const listPath = "/submissions"

type createInput struct {
	AssignmentID string `validate:"objectid" label:"Assignment"`
	Content      string `validate:"notblank" label:"Submission"`
}

// errRejected carries a user-facing reason a submission was not stored.
type errRejected struct{ msg string }

func (e errRejected) Error() string { return e.msg }

// create validates the input against the assignment and stores it. A
// rejection returns errRejected and writes nothing.
func (h *Handler) create(ctx context.Context, profileID string, in createInput) error {
	in.Content = strings.TrimSpace(in.Content)
	if res := inputval.Validate(in); res.HasErrors() {
		if res.Has("Content") {
			return errRejected{MsgEmpty}
		}
		return errRejected{MsgAssignmentNotFound}
	}

	oid, _ := primitive.ObjectIDFromHex(in.AssignmentID)
	a, err := h.Assignments.GetByID(ctx, oid)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		return errRejected{MsgAssignmentNotFound}
	}
	if err != nil {
		return err
	}
	if a.IsPastDue(h.now()) {
		return errRejected{MsgClosed}
	}

	_, err = h.Submissions.Create(ctx, oid, profileID, in.Content)
	return err
}

// HandleCreate handles POST /submissions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse submission form failed", err, "Invalid form data.", listPath)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	in := createInput{
		AssignmentID: r.PostFormValue("assignment_id"),
		Content:      r.PostFormValue("content"),
	}
	err := h.create(ctx, user.ID, in)

	var rejected errRejected
	switch {
	case errors.As(err, &rejected):
		h.Flash.Error(w, r, rejected.msg)
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create submission failed", err, "Unable to save your submission.", listPath)
		return
	default:
		h.Log.Info("submission created",
			zap.String("user_id", user.ID),
			zap.String("assignment_id", in.AssignmentID))
		h.Flash.Success(w, r, MsgCreated)
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}
