// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from HUMORPROJECT_* environment variables, config files, or
// command-line flags (loaded in LoadConfig). Framework settings such as
// ports, TLS and log level live in WAFFLE's CoreConfig instead.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Signing key for auth cookies, access tokens and the flash cookie.
	SessionKey    string
	SessionName   string // flash cookie name
	SessionDomain string // cookie domain (blank means current host)

	// BaseURL is the public site URL; the OAuth callback hangs off it.
	BaseURL string
	// BackendURL is the auth backend. Its first host label names the auth cookie.
	BackendURL string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string

	AllowedEmailDomains []string
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration

	// Studies REST API
	RestAPIURL     string
	RestAPITimeout time.Duration

	// SuperAdminEmail is promoted (or created) at startup.
	SuperAdminEmail string

	// Audit sinks: "all", "db", "log" or "off".
	AuditLogAuth  string
	AuditLogAdmin string

	SessionCleanupInterval time.Duration
	LoginRatePerMinute     int
}

// AuthConfigured reports whether every setting sign-in needs is present.
// When false the site renders a "not configured" state and protected pages
// send visitors to /login.
func (c AppConfig) AuthConfigured() bool {
	return c.BaseURL != "" && c.BackendURL != "" && c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
