package oauthstate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/app/store/oauthstate"
	"github.com/dalemusser/humorproject/internal/testutil"
)

func TestStore_SaveAndConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-abc", "/submissions", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	returnURL, valid, err := store.Consume(ctx, "state-abc")
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if !valid {
		t.Fatal("expected state to be valid")
	}
	if returnURL != "/submissions" {
		t.Errorf("returnURL = %q, want /submissions", returnURL)
	}
}

func TestStore_Consume_OneTimeUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-once", "", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, valid, _ := store.Consume(ctx, "state-once"); !valid {
		t.Fatal("first Consume should be valid")
	}
	if _, valid, err := store.Consume(ctx, "state-once"); err != nil || valid {
		t.Errorf("second Consume = (%v, %v), want (false, nil)", valid, err)
	}
}

func TestStore_Consume_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-old", "", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_, valid, err := store.Consume(ctx, "state-old")
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if valid {
		t.Error("expired state should not be valid")
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = store.Save(ctx, "a", "", time.Now().Add(-time.Hour))
	_ = store.Save(ctx, "b", "", time.Now().Add(-time.Minute))
	_ = store.Save(ctx, "c", "", time.Now().Add(time.Hour))

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	if _, valid, _ := store.Consume(ctx, "c"); !valid {
		t.Error("unexpired state should survive cleanup")
	}
}
