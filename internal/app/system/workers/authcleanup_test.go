package workers_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/workers"
	"go.uber.org/zap"
)

type countingSessions struct {
	calls  atomic.Int32
	cutoff atomic.Value
}

func (c *countingSessions) DeleteStale(_ context.Context, cutoff time.Time) (int64, error) {
	c.calls.Add(1)
	c.cutoff.Store(cutoff)
	return 2, nil
}

type failingStates struct{ calls atomic.Int32 }

func (f *failingStates) CleanupExpired(context.Context) (int64, error) {
	f.calls.Add(1)
	return 0, errors.New("boom")
}

func TestAuthCleanup_Sweep(t *testing.T) {
	s := &countingSessions{}
	st := &failingStates{}
	w := workers.NewAuthCleanup(s, st, zap.NewNop(), time.Hour, time.Hour)

	before := time.Now().UTC().Add(-time.Hour)
	w.Sweep(context.Background())

	if s.calls.Load() != 1 || st.calls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1 even when one sweeper fails", s.calls.Load(), st.calls.Load())
	}
	cutoff := s.cutoff.Load().(time.Time)
	if cutoff.Before(before) || cutoff.After(time.Now().UTC()) {
		t.Errorf("cutoff %v not one grace period ago", cutoff)
	}
}

func TestAuthCleanup_StartStop(t *testing.T) {
	s := &countingSessions{}
	st := &failingStates{}
	w := workers.NewAuthCleanup(s, st, zap.NewNop(), 10*time.Millisecond, 0)

	w.Start()
	deadline := time.Now().Add(2 * time.Second)
	for s.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if s.calls.Load() == 0 {
		t.Error("expected at least one sweep")
	}
}
