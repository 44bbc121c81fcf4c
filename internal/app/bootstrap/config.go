// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/humorproject/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the course site.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, backend_url, etc.
//   - Environment variables: HUMORPROJECT_MONGO_URI, HUMORPROJECT_BACKEND_URL, etc.
//   - Command-line flags: --mongo_uri, --backend_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "humor_project", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Signing key for auth and flash cookies (must be strong in production)"},
	{Name: "session_name", Default: "humorproject-flash", Desc: "Flash message cookie name"},
	{Name: "session_domain", Default: "", Desc: "Cookie domain (blank means current host)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public site URL; OAuth redirects to base_url/auth/callback"},
	{Name: "backend_url", Default: "", Desc: "Auth backend URL; its first host label names the auth cookie"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "allowed_email_domains", Default: "columbia.edu,barnard.edu", Desc: "Comma-separated email domains allowed to sign in"},
	{Name: "access_token_ttl", Default: "1h", Desc: "Access token lifetime"},
	{Name: "refresh_token_ttl", Default: "720h", Desc: "Refresh session lifetime"},

	// Studies REST API
	{Name: "rest_api_url", Default: "", Desc: "Base URL of the studies REST API"},
	{Name: "rest_api_timeout", Default: "10s", Desc: "Studies request timeout"},

	// SuperAdmin bootstrap
	{Name: "superadmin_email", Default: "", Desc: "Email of the superadmin profile (promotes/creates on startup)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "session_cleanup_interval", Default: "10m", Desc: "How often expired refresh sessions and OAuth states are swept"},
	{Name: "login_rate_per_minute", Default: 20, Desc: "Sign-in attempts allowed per IP per minute (0 disables)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// HUMORPROJECT_* environment variables and flags, merged with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HUMORPROJECT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		BaseURL:    strings.TrimRight(strings.TrimSpace(appValues.String("base_url")), "/"),
		BackendURL: strings.TrimSpace(appValues.String("backend_url")),

		GoogleClientID:     strings.TrimSpace(appValues.String("google_client_id")),
		GoogleClientSecret: strings.TrimSpace(appValues.String("google_client_secret")),

		AllowedEmailDomains: splitDomains(appValues.String("allowed_email_domains")),
		AccessTokenTTL:      appValues.Duration("access_token_ttl", time.Hour),
		RefreshTokenTTL:     appValues.Duration("refresh_token_ttl", 30*24*time.Hour),

		RestAPIURL:     strings.TrimSpace(appValues.String("rest_api_url")),
		RestAPITimeout: appValues.Duration("rest_api_timeout", 10*time.Second),

		SuperAdminEmail: strings.TrimSpace(appValues.String("superadmin_email")),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		SessionCleanupInterval: appValues.Duration("session_cleanup_interval", 10*time.Minute),
		LoginRatePerMinute:     appValues.Int("login_rate_per_minute"),
	}

	if !appCfg.AuthConfigured() {
		logger.Warn("sign-in is not configured; protected pages will redirect to /login",
			zap.Bool("base_url", appCfg.BaseURL != ""),
			zap.Bool("backend_url", appCfg.BackendURL != ""),
			zap.Bool("google_client", appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""))
	}

	return coreCfg, appCfg, nil
}

// splitDomains parses a comma-separated domain list into lower-case entries.
func splitDomains(s string) []string {
	var out []string
	for _, d := range strings.Split(s, ",") {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation. Returning an error
// aborts startup before any backend is contacted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.SessionKey) < 32 {
		if coreCfg != nil && coreCfg.Env == "prod" {
			return errors.New("session_key must be at least 32 characters in production")
		}
		logger.Warn("session_key is shorter than 32 characters")
	}
	if len(appCfg.AllowedEmailDomains) == 0 {
		return errors.New("allowed_email_domains must list at least one domain")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if res := inputval.Validate(configValues{
		BaseURL:         appCfg.BaseURL,
		BackendURL:      appCfg.BackendURL,
		RestAPIURL:      appCfg.RestAPIURL,
		SuperAdminEmail: appCfg.SuperAdminEmail,
	}); res.HasErrors() {
		return errors.New(res.All())
	}
	return nil
}

// configValues holds the free-form settings checked by rule. Blank values
// are allowed; they disable the feature that needs them.
type configValues struct {
	BaseURL         string `validate:"omitempty,httpurl" label:"base_url"`
	BackendURL      string `validate:"omitempty,httpurl" label:"backend_url"`
	RestAPIURL      string `validate:"omitempty,httpurl" label:"rest_api_url"`
	SuperAdminEmail string `validate:"omitempty,email" label:"superadmin_email"`
}
