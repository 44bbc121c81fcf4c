// internal/app/features/profile/handler.go
package profile

import (
	"net/http"

	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Messages shown after profile writes.
const (
	MsgUpdated      = "Profile updated."
	MsgNameRequired = "Please enter your first and last name."
)

// Renamer re-issues the session so it carries a new display name.
// *auth.SessionManager satisfies it.
type Renamer interface {
	Rename(w http.ResponseWriter, r *http.Request, name string) error
}

// Handler owns the profile, complete-profile and timezone handlers.
type Handler struct {
	Profiles *profilestore.Store
	Flash    *flash.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	// Sessions may be nil; the session name then updates at next sign-in.
	Sessions Renamer

	// SecureCookies sets the Secure flag on the timezone cookie.
	SecureCookies bool
}

// NewHandler constructs a Handler bound to the given Mongo database and logger.
func NewHandler(db *mongo.Database, fs *flash.Store, secureCookies bool, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Profiles:      profilestore.New(db),
		Flash:         fs,
		Log:           logger,
		ErrLog:        errLog,
		SecureCookies: secureCookies,
	}
}
