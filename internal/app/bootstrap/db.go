// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	agendastore "github.com/dalemusser/humorproject/internal/app/store/agendas"
	assignmentstore "github.com/dalemusser/humorproject/internal/app/store/assignments"
	auditstore "github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/store/authsessions"
	docstore "github.com/dalemusser/humorproject/internal/app/store/documentations"
	"github.com/dalemusser/humorproject/internal/app/store/oauthstate"
	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	semesterstore "github.com/dalemusser/humorproject/internal/app/store/semesters"
	submissionstore "github.com/dalemusser/humorproject/internal/app/store/submissions"
	"github.com/dalemusser/humorproject/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// ConnectDB connects to MongoDB with the configured pool sizes and verifies
// the connection with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize).
		SetAppName("humorproject")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", appCfg.MongoMaxPoolSize),
		zap.Uint64("min_pool_size", appCfg.MongoMinPoolSize))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		bg:            &background{},
	}, nil
}

// EnsureSchema creates the indexes every store relies on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	return indexes.EnsureAll(ctx, logger,
		indexes.Collection{Name: "profiles", Store: profilestore.New(db)},
		indexes.Collection{Name: "semesters", Store: semesterstore.New(db)},
		indexes.Collection{Name: "assignments", Store: assignmentstore.New(db)},
		indexes.Collection{Name: "meeting_agendas", Store: agendastore.New(db)},
		indexes.Collection{Name: "documentations", Store: docstore.New(db)},
		indexes.Collection{Name: "submissions", Store: submissionstore.New(db)},
		indexes.Collection{Name: "auth_sessions", Store: authsessions.New(db)},
		indexes.Collection{Name: "oauth_states", Store: oauthstate.New(db)},
		indexes.Collection{Name: "audit_events", Store: auditstore.New(db)},
	)
}
