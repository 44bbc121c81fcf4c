package profiles_test

import (
	"testing"

	"github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/testutil"
)

func TestStore_EnsureForSignIn_CreatesOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profiles.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	first, err := store.EnsureForSignIn(ctx, "Ada@Columbia.edu")
	if err != nil {
		t.Fatalf("EnsureForSignIn failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if first.HasFullName() {
		t.Error("new profile should not have a full name")
	}
	if first.IsSuperAdmin {
		t.Error("new profile should not be superadmin")
	}

	again, err := store.EnsureForSignIn(ctx, "ada@columbia.edu")
	if err != nil {
		t.Fatalf("second EnsureForSignIn failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("same email produced different ids: %q vs %q", first.ID, again.ID)
	}
}

func TestStore_UpdateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profiles.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := testutil.NewFixtures(t, db).CreateProfile(ctx, "grace@barnard.edu", "", "", false)

	if err := store.UpdateName(ctx, p.ID, "  Grace ", " Hopper "); err != nil {
		t.Fatalf("UpdateName failed: %v", err)
	}
	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FirstName != "Grace" || got.LastName != "Hopper" {
		t.Errorf("names = %q %q, want trimmed", got.FirstName, got.LastName)
	}
	if got.ModifiedAt == nil {
		t.Error("expected modified time to be stamped")
	}

	if err := store.UpdateName(ctx, "missing", "a", "b"); err != profiles.ErrNotFound {
		t.Errorf("UpdateName(missing) err = %v, want ErrNotFound", err)
	}
}

func TestStore_SuperAdminFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profiles.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := testutil.NewFixtures(t, db).CreateProfile(ctx, "x@columbia.edu", "X", "Y", false)

	if err := store.SetSuperAdmin(ctx, p.ID, true); err != nil {
		t.Fatalf("SetSuperAdmin failed: %v", err)
	}
	on, err := store.IsSuperAdmin(ctx, p.ID)
	if err != nil || !on {
		t.Errorf("IsSuperAdmin = (%v, %v), want (true, nil)", on, err)
	}

	if _, err := store.IsSuperAdmin(ctx, "nope"); err != profiles.ErrNotFound {
		t.Errorf("IsSuperAdmin(missing) err = %v, want ErrNotFound", err)
	}
}

func TestStore_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profiles.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	ada := fx.CreateProfile(ctx, "ada@columbia.edu", "Ada", "Lovelace", false)
	fx.CreateProfile(ctx, "alan@columbia.edu", "Alan", "Turing", false)
	fx.CreateProfile(ctx, "jose@barnard.edu", "José", "Núñez", false)

	tests := []struct {
		name string
		term string
		want int
	}{
		{"email substring", "columbia", 2},
		{"first name case-insensitive", "ADA", 1},
		{"last name", "turing", 1},
		{"diacritics folded", "nunez", 1},
		{"exact uuid", ada.ID, 1},
		{"regex metacharacters are literal", ".*", 0},
		{"blank", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(ctx, tt.term, 0)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestStore_PromoteByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profiles.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.PromoteByEmail(ctx, "boss@columbia.edu")
	if err != nil {
		t.Fatalf("PromoteByEmail failed: %v", err)
	}
	if !created {
		t.Error("expected a new profile to be created")
	}

	p, err := store.EnsureForSignIn(ctx, "boss@columbia.edu")
	if err != nil {
		t.Fatalf("EnsureForSignIn failed: %v", err)
	}
	if !p.IsSuperAdmin {
		t.Error("promoted profile should be superadmin")
	}

	created, err = store.PromoteByEmail(ctx, "BOSS@columbia.edu")
	if err != nil {
		t.Fatalf("PromoteByEmail failed: %v", err)
	}
	if created {
		t.Error("second promotion should not create a profile")
	}
}
