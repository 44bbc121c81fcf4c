// internal/app/features/documentations/handler.go
package documentations

import (
	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	docstore "github.com/dalemusser/humorproject/internal/app/store/documentations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultTitle = "Untitled documentation"

// MsgNotFound is shown for unknown or malformed documentation ids.
const MsgNotFound = "Documentation not found."

type Handler struct {
	Docs   *docstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Docs:   docstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

func titleOrDefault(s string) string {
	if s == "" {
		return defaultTitle
	}
	return s
}
