package authz_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/authz"
	"github.com/dalemusser/humorproject/internal/testutil"
	"go.uber.org/zap"
)

type stubFlags struct {
	flag bool
	err  error
}

func (s stubFlags) IsSuperAdmin(context.Context, string) (bool, error) { return s.flag, s.err }

func TestResolver_IsSuperAdmin(t *testing.T) {
	tests := []struct {
		name string
		id   string
		stub stubFlags
		want bool
	}{
		{"flag set", "u1", stubFlags{flag: true}, true},
		{"flag clear", "u1", stubFlags{flag: false}, false},
		{"missing row", "u1", stubFlags{err: profiles.ErrNotFound}, false},
		{"query error", "u1", stubFlags{flag: true, err: errors.New("boom")}, false},
		{"empty id", "", stubFlags{flag: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := authz.NewResolver(tt.stub, zap.NewNop())
			if got := rv.IsSuperAdmin(context.Background(), tt.id); got != tt.want {
				t.Errorf("IsSuperAdmin = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_AgainstMongo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	admin := fx.CreateProfile(ctx, "boss@columbia.edu", "B", "O", true)
	student := fx.CreateProfile(ctx, "kid@columbia.edu", "K", "I", false)

	rv := authz.NewResolver(profiles.New(db), zap.NewNop())
	if !rv.IsSuperAdmin(ctx, admin.ID) {
		t.Error("expected superadmin")
	}
	if rv.IsSuperAdmin(ctx, student.ID) {
		t.Error("expected non-superadmin")
	}
	if rv.IsSuperAdmin(ctx, "nobody") {
		t.Error("expected false for missing profile")
	}
}

func TestIsSuperAdmin_FromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if authz.IsSuperAdmin(req) {
		t.Error("expected false when no user")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", IsSuperAdmin: true})
	if !authz.IsSuperAdmin(req) {
		t.Error("expected true for resolved superadmin")
	}
}
