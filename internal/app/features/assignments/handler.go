// internal/app/features/assignments/handler.go
package assignments

import (
	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the student assignment pages.
type Handler struct {
	Assignments *assignmentstore.Store
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		ErrLog:      errLog,
		Log:         logger,
	}
}
