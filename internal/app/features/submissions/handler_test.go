package submissions

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/dalemusser/humorproject/internal/app/features/errors"
	"github.com/dalemusser/humorproject/internal/app/system/datefmt"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fs, err := flash.New("0123456789abcdef0123456789abcdef", "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("flash.New: %v", err)
	}
	h := NewHandler(db, fs, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h, testutil.NewFixtures(t, db)
}

func TestCards_GroupsByAssignment(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := testutil.StudentUser()
	other := "someone-else"
	sem := fx.CreateSemester(ctx, "Spring 2026")
	open := fx.CreateAssignment(ctx, "Open", "", fixedNow.Add(48*time.Hour), sem.ID)
	closed := fx.CreateAssignment(ctx, "Closed", "", fixedNow.Add(-48*time.Hour), sem.ID)

	fx.CreateSubmission(ctx, open.ID, student.ID, "first", fixedNow.Add(-2*time.Hour))
	fx.CreateSubmission(ctx, open.ID, student.ID, "<p>&nbsp;</p>", fixedNow.Add(-time.Hour))
	fx.CreateSubmission(ctx, open.ID, other, "not mine", fixedNow.Add(-time.Hour))

	cards, err := h.cards(ctx, student.ID, datefmt.New(time.UTC))
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].AssignmentID != closed.ID.Hex() || !cards[0].Closed {
		t.Errorf("first card = %+v, want closed assignment first", cards[0])
	}
	if len(cards[0].Entries) != 0 {
		t.Errorf("closed card has %d entries", len(cards[0].Entries))
	}

	openCard := cards[1]
	if openCard.AssignmentID != open.ID.Hex() {
		t.Errorf("second card = %q, want the open assignment", openCard.AssignmentID)
	}
	if openCard.Closed {
		t.Error("open assignment marked closed")
	}
	if len(openCard.Entries) != 2 {
		t.Fatalf("open card has %d entries, want 2 (only the student's)", len(openCard.Entries))
	}
	if openCard.Entries[0].HasContent {
		t.Error("newest entry is blank and should show the empty state")
	}
	if !openCard.Entries[1].HasContent {
		t.Error("older entry should have content")
	}
}

func TestHandleCreate(t *testing.T) {
	student := testutil.StudentUser()

	tests := []struct {
		name     string
		form     func(open, closed primitive.ObjectID) url.Values
		wantRows int64
	}{
		{"stores trimmed content", func(open, _ primitive.ObjectID) url.Values {
			return url.Values{"assignment_id": {open.Hex()}, "content": {"  a pun  "}}
		}, 1},
		{"blank content", func(open, _ primitive.ObjectID) url.Values {
			return url.Values{"assignment_id": {open.Hex()}, "content": {"   "}}
		}, 0},
		{"past due", func(_, closed primitive.ObjectID) url.Values {
			return url.Values{"assignment_id": {closed.Hex()}, "content": {"late"}}
		}, 0},
		{"unknown assignment", func(_, _ primitive.ObjectID) url.Values {
			return url.Values{"assignment_id": {primitive.NewObjectID().Hex()}, "content": {"hi"}}
		}, 0},
		{"malformed assignment id", func(_, _ primitive.ObjectID) url.Values {
			return url.Values{"assignment_id": {"nope"}, "content": {"hi"}}
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fx := newTestHandler(t)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			sem := fx.CreateSemester(ctx, "Spring 2026")
			open := fx.CreateAssignment(ctx, "Open", "", fixedNow.Add(time.Hour), sem.ID)
			closed := fx.CreateAssignment(ctx, "Closed", "", fixedNow.Add(-time.Hour), sem.ID)

			rec := testutil.NewRecorder()
			h.HandleCreate(rec, testutil.NewFormRequest("/submissions", tt.form(open.ID, closed.ID), student))

			rec.AssertRedirect(t, "/submissions")
			n, err := h.Submissions.Count(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.wantRows {
				t.Errorf("stored %d submissions, want %d", n, tt.wantRows)
			}
		})
	}
}

func TestCreate_Messages(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	closed := fx.CreateAssignment(ctx, "Closed", "", fixedNow.Add(-time.Minute), primitive.NewObjectID())

	tests := []struct {
		in   createInput
		want string
	}{
		{createInput{AssignmentID: closed.ID.Hex(), Content: "<p></p>"}, MsgClosed},
		{createInput{AssignmentID: closed.ID.Hex(), Content: " \n "}, MsgEmpty},
		{createInput{AssignmentID: "", Content: "hi"}, MsgAssignmentNotFound},
		{createInput{AssignmentID: primitive.NewObjectID().Hex(), Content: "hi"}, MsgAssignmentNotFound},
	}
	for _, tt := range tests {
		err := h.create(ctx, "p-1", tt.in)
		rej, ok := err.(errRejected)
		if !ok {
			t.Errorf("%+v: err = %v, want rejection", tt.in, err)
			continue
		}
		if rej.msg != tt.want {
			t.Errorf("%+v: msg = %q, want %q", tt.in, rej.msg, tt.want)
		}
	}
}

func TestServeList_RequiresUser(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewRequest(http.MethodGet, "/submissions"))
	rec.AssertRedirect(t, "/login")
}
