package documentations

import (
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestRows_NewestFirstWithDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, nil, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateDocumentation(ctx, "Grading", "<p>Participation &amp; projects</p>")
	time.Sleep(5 * time.Millisecond)
	fx.CreateDocumentation(ctx, "", "")

	rows, err := h.rows(ctx, datefmt.New(time.UTC))
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Title != defaultTitle {
		t.Errorf("newest row title = %q, want %q", rows[0].Title, defaultTitle)
	}
	if rows[1].Title != "Grading" {
		t.Errorf("older row title = %q", rows[1].Title)
	}
	if rows[1].Preview != "Participation & projects" {
		t.Errorf("Preview = %q", rows[1].Preview)
	}
}

func TestDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := NewHandler(db, nil, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc := fx.CreateDocumentation(ctx, "Grading", "## Rubric\n\nBe funny.")
	empty := fx.CreateDocumentation(ctx, "Empty", "<p>&nbsp;</p>")

	var data detailData
	found, err := h.detail(ctx, doc.ID.Hex(), datefmt.New(time.UTC), &data)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if data.DocTitle != "Grading" || !data.HasContent || data.Content == "" {
		t.Errorf("unexpected detail: %+v", data)
	}
	if data.UpdatedText == "" {
		t.Error("expected a last-updated date")
	}

	var emptyData detailData
	if _, err := h.detail(ctx, empty.ID.Hex(), datefmt.New(time.UTC), &emptyData); err != nil {
		t.Fatal(err)
	}
	if emptyData.HasContent {
		t.Error("<p>&nbsp;</p> should count as empty")
	}

	for _, id := range []string{"zzz", primitive.NewObjectID().Hex()} {
		found, err := h.detail(ctx, id, datefmt.New(time.UTC), &detailData{})
		if err != nil || found {
			t.Errorf("id %q: found=%v err=%v, want not found", id, found, err)
		}
	}
}
