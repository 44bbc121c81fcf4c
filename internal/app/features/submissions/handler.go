// internal/app/features/submissions/handler.go
package submissions

import (
	"time"

	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	submissionstore "github.com/dalemusser/humorproject/internal/app/store/submissions"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Messages shown after POST /submissions.
const (
	MsgCreated            = "Submission created."
	MsgEmpty              = "Please add your submission."
	MsgClosed             = "Submissions are closed for this assignment."
	MsgAssignmentNotFound = "Assignment not found."
)

// Handler serves the student submissions page.
type Handler struct {
	Assignments *assignmentstore.Store
	Submissions *submissionstore.Store
	Flash       *flash.Store
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger

	now func() time.Time
}

func NewHandler(db *mongo.Database, fs *flash.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		Submissions: submissionstore.New(db),
		Flash:       fs,
		ErrLog:      errLog,
		Log:         logger,
		now:         time.Now,
	}
}
