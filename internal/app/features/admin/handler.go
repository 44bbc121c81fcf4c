// internal/app/features/admin/handler.go
package admin

import (
	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	agendastore "github.com/dalemusser/humorproject/internal/app/store/agendas"
	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	auditstore "github.com/dalemusser/humorproject/internal/app/store/audit"
	docstore "github.com/dalemusser/humorproject/internal/app/store/documentations"
	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	semesterstore "github.com/dalemusser/humorproject/internal/app/store/semesters"
	submissionstore "github.com/dalemusser/humorproject/internal/app/store/submissions"
	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /admin console. Every route sits behind the route
// guard's superadmin check.
type Handler struct {
	DB *mongo.Database

	Assignments *assignmentstore.Store
	Agendas     *agendastore.Store
	Docs        *docstore.Store
	Semesters   *semesterstore.Store
	Submissions *submissionstore.Store
	Profiles    *profilestore.Store
	Audit       *auditstore.Store

	Flash    *flash.Store
	AuditLog *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger

	AuthConfigured bool
}

func NewHandler(db *mongo.Database, fs *flash.Store, audit *auditlog.Logger, authConfigured bool, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:             db,
		Assignments:    assignmentstore.New(db),
		Agendas:        agendastore.New(db),
		Docs:           docstore.New(db),
		Semesters:      semesterstore.New(db),
		Submissions:    submissionstore.New(db),
		Profiles:       profilestore.New(db),
		Audit:          auditstore.New(db),
		Flash:          fs,
		AuditLog:       audit,
		ErrLog:         errLog,
		Log:            logger,
		AuthConfigured: authConfigured,
	}
}
