package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, "p1", "a@columbia.edu", "google")
	logger.Logout(ctx, req, "p1", "a@columbia.edu")
	logger.ContentChanged(ctx, req, "p1", audit.EventAssignmentCreated, "x", "t")
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode   string
		stored int
	}{
		{"off", 0},
		{"log", 0},
		{"db", 1},
		{"all", 1},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			store := audit.New(db)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: tt.mode, Admin: tt.mode})
			logger.LoginSuccess(ctx, httptest.NewRequest("GET", "/auth/callback", nil), "p1", "a@columbia.edu", "google")

			events, err := store.Query(ctx, audit.QueryFilter{ProfileID: "p1"})
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(events) != tt.stored {
				t.Errorf("mode %q stored %d events, want %d", tt.mode, len(events), tt.stored)
			}
		})
	}
}

func TestLogger_CategoriesAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: "off", Admin: "db"})
	req := httptest.NewRequest("POST", "/admin/users", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	logger.LoginRejectedDomain(ctx, req, "eve@gmail.com")
	logger.SuperAdminChanged(ctx, req, "actor", "target", "t@columbia.edu", true)

	events, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.EventType != audit.EventSuperAdminGranted || ev.ActorID != "actor" || ev.ProfileID != "target" {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.IP != "203.0.113.7" {
		t.Errorf("IP = %q, want first forwarded hop", ev.IP)
	}
}
