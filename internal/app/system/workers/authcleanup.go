// internal/app/system/workers/authcleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionSweeper deletes refresh sessions that expired or were revoked.
type SessionSweeper interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// StateSweeper deletes expired OAuth states.
type StateSweeper interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// AuthCleanup periodically removes dead refresh sessions and OAuth states.
type AuthCleanup struct {
	sessions SessionSweeper
	states   StateSweeper
	log      *zap.Logger
	interval time.Duration
	grace    time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewAuthCleanup creates the worker. Rows are deleted once they have been
// expired or revoked for longer than grace.
func NewAuthCleanup(sessions SessionSweeper, states StateSweeper, logger *zap.Logger, interval, grace time.Duration) *AuthCleanup {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &AuthCleanup{
		sessions: sessions,
		states:   states,
		log:      logger,
		interval: interval,
		grace:    grace,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *AuthCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("auth cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker and waits for it to finish. Safe to call twice.
func (w *AuthCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("auth cleanup worker stopped")
}

func (w *AuthCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep(context.Background())
		}
	}
}

// Sweep runs one cleanup pass.
func (w *AuthCleanup) Sweep(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	if n, err := w.sessions.DeleteStale(ctx, time.Now().UTC().Add(-w.grace)); err != nil {
		w.log.Error("failed to delete stale auth sessions", zap.Error(err))
	} else if n > 0 {
		w.log.Info("deleted stale auth sessions", zap.Int64("count", n))
	}

	if n, err := w.states.CleanupExpired(ctx); err != nil {
		w.log.Error("failed to delete expired oauth states", zap.Error(err))
	} else if n > 0 {
		w.log.Info("deleted expired oauth states", zap.Int64("count", n))
	}
}
