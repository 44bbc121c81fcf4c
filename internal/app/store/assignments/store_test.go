package assignments_test

import (
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/store/assignments"
	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndGet_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignments.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sem := testutil.NewFixtures(t, db).CreateSemester(ctx, "Spring 2026")
	due := time.Date(2026, 2, 1, 23, 59, 0, 0, time.UTC)

	created, err := store.Create(ctx, models.Assignment{
		Title:       "T",
		Description: "<p>D</p>",
		DueDate:     due,
		SemesterID:  sem.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "T" {
		t.Errorf("Title = %q, want T", got.Title)
	}
	if got.Description != "<p>D</p>" {
		t.Errorf("Description = %q", got.Description)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
	if got.ModifiedAt == nil {
		t.Error("expected modified time on create")
	}
}

func TestStore_Update_UnchangedFieldsOnlyBumpModified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignments.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sem := testutil.NewFixtures(t, db).CreateSemester(ctx, "Spring 2026")
	created, err := store.Create(ctx, models.Assignment{
		Title:       "Essay",
		Description: "<p>Write</p>",
		DueDate:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SemesterID:  sem.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before, _ := store.GetByID(ctx, created.ID)

	time.Sleep(5 * time.Millisecond)
	if err := store.Update(ctx, before); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	after, _ := store.GetByID(ctx, created.ID)

	if after.Title != before.Title || after.Description != before.Description ||
		!after.DueDate.Equal(before.DueDate) || after.SemesterID != before.SemesterID ||
		!after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("fields changed: before %+v after %+v", before, after)
	}
	if after.ModifiedAt == nil || !after.ModifiedAt.After(*before.ModifiedAt) {
		t.Errorf("modified time not bumped: before %v after %v", before.ModifiedAt, after.ModifiedAt)
	}
}

func TestStore_List_OrderedByDueDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignments.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	sem := fx.CreateSemester(ctx, "S")
	now := time.Now().UTC()
	fx.CreateAssignment(ctx, "late", "", now.Add(72*time.Hour), sem.ID)
	fx.CreateAssignment(ctx, "early", "", now.Add(24*time.Hour), sem.ID)
	fx.CreateAssignment(ctx, "middle", "", now.Add(48*time.Hour), sem.ID)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"early", "middle", "late"}
	for i, a := range list {
		if a.Title != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, a.Title, want[i])
		}
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignments.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	a := fx.CreateAssignment(ctx, "gone", "", time.Now(), fx.CreateSemester(ctx, "S").ID)

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, a.ID); err != assignments.ErrNotFound {
		t.Errorf("GetByID after delete err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, primitive.NewObjectID()); err != assignments.ErrNotFound {
		t.Errorf("Delete(missing) err = %v, want ErrNotFound", err)
	}
}
