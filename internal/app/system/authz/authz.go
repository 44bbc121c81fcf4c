// internal/app/system/authz/authz.go
package authz

import (
	"context"
	"net/http"

	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"go.uber.org/zap"
)

// FlagReader reads a profile's superadmin flag. *profiles.Store satisfies it.
type FlagReader interface {
	IsSuperAdmin(ctx context.Context, profileID string) (bool, error)
}

// Resolver answers role questions against the profiles collection.
// Results are not cached; a revoked flag takes effect on the next request.
type Resolver struct {
	profiles FlagReader
	log      *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(profiles FlagReader, logger *zap.Logger) *Resolver {
	return &Resolver{profiles: profiles, log: logger}
}

// IsSuperAdmin reports whether the profile holds the superadmin flag.
// A missing profile or a failed read counts as false.
func (rv *Resolver) IsSuperAdmin(ctx context.Context, profileID string) bool {
	if profileID == "" {
		return false
	}
	ok, err := rv.profiles.IsSuperAdmin(ctx, profileID)
	if err != nil {
		rv.log.Debug("superadmin lookup failed; treating as false",
			zap.String("user_id", profileID), zap.Error(err))
		return false
	}
	return ok
}

// IsSuperAdmin reports whether the current request's user was resolved as a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsSuperAdmin
}
