package indexes_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/humorproject/internal/app/system/indexes"
	"go.uber.org/zap"
)

type fakeStore struct {
	err    error
	called bool
}

func (f *fakeStore) EnsureIndexes(context.Context) error {
	f.called = true
	return f.err
}

func TestEnsureAll_AggregatesErrors(t *testing.T) {
	ok := &fakeStore{}
	bad1 := &fakeStore{err: errors.New("conflict")}
	bad2 := &fakeStore{err: errors.New("timeout")}

	err := indexes.EnsureAll(context.Background(), zap.NewNop(),
		indexes.Collection{Name: "assignments", Store: bad1},
		indexes.Collection{Name: "profiles", Store: ok},
		indexes.Collection{Name: "submissions", Store: bad2},
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if !ok.called || !bad2.called {
		t.Error("every store should be attempted")
	}
	for _, want := range []string{"assignments: conflict", "submissions: timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "profiles") {
		t.Error("successful store should not be reported")
	}
}

func TestEnsureAll_NoStores(t *testing.T) {
	if err := indexes.EnsureAll(context.Background(), zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
