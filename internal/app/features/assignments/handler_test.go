package assignments

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestRows_OrderedByDueDate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sem := fx.CreateSemester(ctx, "Fall 2026")
	late := fx.CreateAssignment(ctx, "Stand-up set", "", time.Date(2026, 12, 1, 17, 0, 0, 0, time.UTC), sem.ID)
	early := fx.CreateAssignment(ctx, "Pun analysis", "<p>Find three.</p>", time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC), sem.ID)

	rows, err := h.rows(ctx, datefmt.New(time.UTC))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID != early.ID.Hex() || rows[1].ID != late.ID.Hex() {
		t.Errorf("rows not ordered by due date: %+v", rows)
	}
	if rows[0].URL != "/assignment/"+early.ID.Hex() {
		t.Errorf("URL = %q", rows[0].URL)
	}
	if rows[0].DueText != "Tuesday, 9/15/2026, 5:00:00 PM" {
		t.Errorf("DueText = %q", rows[0].DueText)
	}
}

func TestRows_Empty(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rows, err := h.rows(ctx, datefmt.New(time.UTC))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestDetail(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sem := fx.CreateSemester(ctx, "Fall 2026")
	withDesc := fx.CreateAssignment(ctx, "Pun analysis", "<p>Find <strong>three</strong> puns.</p>", time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC), sem.ID)
	blank := fx.CreateAssignment(ctx, "Reading", "<p> </p>", time.Date(2026, 9, 20, 17, 0, 0, 0, time.UTC), sem.ID)

	t.Run("with description", func(t *testing.T) {
		var data detailData
		found, err := h.detail(ctx, withDesc.ID.Hex(), datefmt.New(time.UTC), &data)
		if err != nil || !found {
			t.Fatalf("found=%v err=%v", found, err)
		}
		if data.AssignmentName != "Pun analysis" {
			t.Errorf("AssignmentName = %q", data.AssignmentName)
		}
		if !data.HasDescription || !strings.Contains(string(data.Description), "<strong>three</strong>") {
			t.Errorf("Description = %q", data.Description)
		}
	})

	t.Run("blank description", func(t *testing.T) {
		var data detailData
		found, err := h.detail(ctx, blank.ID.Hex(), datefmt.New(time.UTC), &data)
		if err != nil || !found {
			t.Fatalf("found=%v err=%v", found, err)
		}
		if data.HasDescription {
			t.Error("whitespace-only description should count as empty")
		}
	})

	for _, id := range []string{"not-an-id", primitive.NewObjectID().Hex()} {
		t.Run("missing "+id, func(t *testing.T) {
			var data detailData
			found, err := h.detail(ctx, id, datefmt.New(time.UTC), &data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if found {
				t.Error("expected not found")
			}
		})
	}
}

func TestDetail_PastDue(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	due := time.Date(2026, 9, 15, 17, 0, 0, 0, time.UTC)
	a := fx.CreateAssignment(ctx, "Pun analysis", "", due, primitive.NewObjectID())

	timeNow = func() time.Time { return due.Add(time.Minute) }
	defer func() { timeNow = time.Now }()

	var data detailData
	if _, err := h.detail(ctx, a.ID.Hex(), datefmt.New(time.UTC), &data); err != nil {
		t.Fatal(err)
	}
	if !data.PastDue {
		t.Error("expected PastDue after the due date")
	}
}
