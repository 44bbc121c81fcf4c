package bootstrap

import (
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/humorproject/internal/domain/models"
	"github.com/dalemusser/humorproject/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSuperAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, "Prof@Columbia.edu", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var p models.Profile
	if err := db.Collection("profiles").FindOne(ctx, bson.M{"email_ci": "prof@columbia.edu"}).Decode(&p); err != nil {
		t.Fatalf("failed to find created profile: %v", err)
	}
	if !p.IsSuperAdmin {
		t.Error("expected superadmin flag")
	}
	if p.ID == "" {
		t.Error("expected a generated profile id")
	}
	if p.HasFullName() {
		t.Error("a bootstrap profile has no name until first sign-in")
	}
}

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateProfile(ctx, "ta@barnard.edu", "Tia", "Assistant", false)

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, "TA@barnard.edu", testLogger()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	n, err := db.Collection("profiles").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 profile, got %d", n)
	}

	var p models.Profile
	if err := db.Collection("profiles").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&p); err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if !p.IsSuperAdmin {
		t.Error("existing profile should be promoted")
	}
	if p.FirstName != "Tia" || p.LastName != "Assistant" {
		t.Errorf("names changed: %q %q", p.FirstName, p.LastName)
	}
}

func TestEnsureSuperAdmin_BlankEmailIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := ensureSuperAdmin(ctx, DBDeps{MongoDatabase: db}, "", testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := db.Collection("profiles").CountDocuments(ctx, bson.M{})
	if n != 0 {
		t.Errorf("expected no profiles, got %d", n)
	}
}

func TestEnsureSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	// Idempotent.
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
}

func TestSplitDomains(t *testing.T) {
	got := splitDomains(" Columbia.edu, @barnard.edu ,, ")
	want := []string{"columbia.edu", "barnard.edu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitDomains = %v, want %v", got, want)
	}
	if got := splitDomains(""); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}

func TestAuthConfigured(t *testing.T) {
	full := AppConfig{
		BaseURL:            "http://localhost:3000",
		BackendURL:         "https://abcd.example.co",
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
	}
	if !full.AuthConfigured() {
		t.Error("expected configured")
	}

	for name, clear := range map[string]func(*AppConfig){
		"base_url":             func(c *AppConfig) { c.BaseURL = "" },
		"backend_url":          func(c *AppConfig) { c.BackendURL = "" },
		"google_client_id":     func(c *AppConfig) { c.GoogleClientID = "" },
		"google_client_secret": func(c *AppConfig) { c.GoogleClientSecret = "" },
	} {
		c := full
		clear(&c)
		if c.AuthConfigured() {
			t.Errorf("missing %s should disable auth", name)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	valid := AppConfig{
		MongoURI:            "mongodb://localhost:27017",
		SessionKey:          "0123456789abcdef0123456789abcdef",
		AllowedEmailDomains: []string{"columbia.edu"},
		MongoMaxPoolSize:    50,
		MongoMinPoolSize:    5,
		RefreshTokenTTL:     time.Hour,
	}
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	if err := ValidateConfig(prod, valid, testLogger()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"bad mongo uri", dev, func(c *AppConfig) { c.MongoURI = "postgres://nope" }, true},
		{"short key in prod", prod, func(c *AppConfig) { c.SessionKey = "short" }, true},
		{"short key in dev", dev, func(c *AppConfig) { c.SessionKey = "short" }, false},
		{"no domains", dev, func(c *AppConfig) { c.AllowedEmailDomains = nil }, true},
		{"pool inverted", dev, func(c *AppConfig) { c.MongoMinPoolSize = 100 }, true},
		{"relative rest url", dev, func(c *AppConfig) { c.RestAPIURL = "api.example.com/v1" }, true},
		{"https rest url", dev, func(c *AppConfig) { c.RestAPIURL = "https://api.example.com" }, false},
		{"bad backend url", dev, func(c *AppConfig) { c.BackendURL = "ftp://abcd.example.co" }, true},
		{"bad superadmin email", dev, func(c *AppConfig) { c.SuperAdminEmail = "Boss <boss@columbia.edu>" }, true},
		{"superadmin email", dev, func(c *AppConfig) { c.SuperAdminEmail = "boss@columbia.edu" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := ValidateConfig(tt.core, c, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackgroundStop_NilSafe(t *testing.T) {
	var b *background
	b.setCleanup(nil)
	b.setLimiter(nil)
	b.stop()

	(&background{}).stop()
}
