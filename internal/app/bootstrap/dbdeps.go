// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"sync"

	"github.com/dalemusser/humorproject/internal/app/system/ratelimit"
	"github.com/dalemusser/humorproject/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// bg is shared by every copy of DBDeps WAFFLE hands to the hooks, so
	// Shutdown stops what Startup and BuildHandler started.
	bg *background
}

// background tracks goroutine-owning components that need stopping.
type background struct {
	mu      sync.Mutex
	cleanup *workers.AuthCleanup
	limiter *ratelimit.SignInLimiter
}

func (b *background) setCleanup(w *workers.AuthCleanup) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.cleanup = w
	b.mu.Unlock()
}

func (b *background) setLimiter(l *ratelimit.SignInLimiter) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.limiter = l
	b.mu.Unlock()
}

// stop halts every tracked component. Safe to call more than once.
func (b *background) stop() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cleanup != nil {
		b.cleanup.Stop()
	}
	if b.limiter != nil {
		b.limiter.Stop()
	}
}
