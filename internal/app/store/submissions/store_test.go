package submissions_test

import (
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/store/submissions"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateTrimsContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, primitive.NewObjectID(), "p1", "  my answer \n")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sub.Content != "my answer" {
		t.Errorf("Content = %q, want trimmed", sub.Content)
	}
}

func TestStore_ListByProfile_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	aID := primitive.NewObjectID()
	now := time.Now()
	fx.CreateSubmission(ctx, aID, "p1", "first", now.Add(-2*time.Hour))
	fx.CreateSubmission(ctx, aID, "p1", "second", now.Add(-time.Hour))
	fx.CreateSubmission(ctx, aID, "p2", "other", now)

	list, err := store.ListByProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("ListByProfile failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2, got %d", len(list))
	}
	if list[0].Content != "second" {
		t.Errorf("expected newest first, got %q", list[0].Content)
	}
}

func TestStore_ListWithDetails_Joins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	sem := fx.CreateSemester(ctx, "S")
	a := fx.CreateAssignment(ctx, "Caption Week 1", "", time.Now(), sem.ID)
	p := fx.CreateProfile(ctx, "ada@columbia.edu", "Ada", "Lovelace", false)
	fx.CreateSubmission(ctx, a.ID, p.ID, "joined", time.Now().Add(-time.Minute))
	fx.CreateSubmission(ctx, primitive.NewObjectID(), "ghost", "orphan", time.Now())

	list, err := store.ListWithDetails(ctx)
	if err != nil {
		t.Fatalf("ListWithDetails failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2, got %d", len(list))
	}

	orphan, joined := list[0], list[1]
	if orphan.AssignmentTitle != "" || orphan.Email != "" {
		t.Errorf("orphan should have blank joins: %+v", orphan)
	}
	if joined.AssignmentTitle != "Caption Week 1" {
		t.Errorf("AssignmentTitle = %q", joined.AssignmentTitle)
	}
	if joined.FirstName != "Ada" || joined.LastName != "Lovelace" || joined.Email != "ada@columbia.edu" {
		t.Errorf("profile join = %+v", joined)
	}
	if joined.Content != "joined" {
		t.Errorf("Content = %q", joined.Content)
	}
}

func TestStore_DeleteByAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := submissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	target := primitive.NewObjectID()
	fx.CreateSubmission(ctx, target, "p1", "a", time.Now())
	fx.CreateSubmission(ctx, target, "p2", "b", time.Now())
	fx.CreateSubmission(ctx, primitive.NewObjectID(), "p1", "c", time.Now())

	n, err := store.DeleteByAssignment(ctx, target)
	if err != nil {
		t.Fatalf("DeleteByAssignment failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if total, _ := store.Count(ctx); total != 1 {
		t.Errorf("remaining %d, want 1", total)
	}
}
