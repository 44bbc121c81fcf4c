// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/humorproject/internal/app/resources"
	"github.com/dalemusser/humorproject/internal/app/store/authsessions"
	"github.com/dalemusser/humorproject/internal/app/store/oauthstate"
	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/timeouts"
	"github.com/dalemusser/humorproject/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// cleanupGrace keeps expired or revoked refresh sessions around for a day
// before they are swept.
const cleanupGrace = 24 * time.Hour

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Reset()
	resources.LoadSharedTemplates()

	if err := ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
		return err
	}

	cleanup := workers.NewAuthCleanup(
		authsessions.New(deps.MongoDatabase),
		oauthstate.New(deps.MongoDatabase),
		logger,
		appCfg.SessionCleanupInterval,
		cleanupGrace,
	)
	cleanup.Start()
	deps.bg.setCleanup(cleanup)

	return nil
}

// ensureSuperAdmin promotes the profile with email to superadmin, creating
// it when nobody has signed in with that address yet. A blank email is a
// no-op.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		return nil
	}
	ctx, cancel := timeouts.WithShort(ctx)
	defer cancel()

	created, err := profilestore.New(deps.MongoDatabase).PromoteByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("promote superadmin %s: %w", email, err)
	}
	logger.Info("superadmin ensured", zap.String("email", email), zap.Bool("created", created))
	return nil
}
