// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/humorproject/internal/app/features/admin"
	agendasfeature "github.com/dalemusser/humorproject/internal/app/features/agendas"
	assignmentsfeature "github.com/dalemusser/humorproject/internal/app/features/assignments"
	authgooglefeature "github.com/dalemusser/humorproject/internal/app/features/authgoogle"
	docsfeature "github.com/dalemusser/humorproject/internal/app/features/documentations"
	errorsfeature "github.com/dalemusser/humorproject/internal/app/features/errors"
	healthfeature "github.com/dalemusser/humorproject/internal/app/features/health"
	homefeature "github.com/dalemusser/humorproject/internal/app/features/home"
	loginfeature "github.com/dalemusser/humorproject/internal/app/features/login"
	logoutfeature "github.com/dalemusser/humorproject/internal/app/features/logout"
	profilefeature "github.com/dalemusser/humorproject/internal/app/features/profile"
	studiesfeature "github.com/dalemusser/humorproject/internal/app/features/studies"
	submissionsfeature "github.com/dalemusser/humorproject/internal/app/features/submissions"
	auditstore "github.com/dalemusser/humorproject/internal/app/store/audit"
	"github.com/dalemusser/humorproject/internal/app/store/authsessions"
	"github.com/dalemusser/humorproject/internal/app/store/oauthstate"
	profilestore "github.com/dalemusser/humorproject/internal/app/store/profiles"
	"github.com/dalemusser/humorproject/internal/app/system/auditlog"
	"github.com/dalemusser/humorproject/internal/app/system/auth"
	"github.com/dalemusser/humorproject/internal/app/system/authz"
	"github.com/dalemusser/humorproject/internal/app/system/flash"
	"github.com/dalemusser/humorproject/internal/app/system/guard"
	"github.com/dalemusser/humorproject/internal/app/system/ratelimit"
	"github.com/dalemusser/humorproject/internal/app/system/studiesapi"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the course site.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It boots the template engine, builds the session
// manager and route guard, and mounts every feature router. Public pages
// sit at the top level; everything else goes through guard.Require.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	secure := coreCfg.Env == "prod"
	authConfigured := appCfg.AuthConfigured()

	sessionMgr, err := auth.NewSessionManager(auth.Config{
		SessionKey:     appCfg.SessionKey,
		BackendURL:     appCfg.BackendURL,
		CookieDomain:   appCfg.SessionDomain,
		Secure:         secure,
		AccessTTL:      appCfg.AccessTokenTTL,
		RefreshTTL:     appCfg.RefreshTokenTTL,
		AllowedDomains: appCfg.AllowedEmailDomains,
		Configured:     authConfigured,
	}, authsessions.New(db), logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	flashStore, err := flash.New(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("flash store init failed", zap.Error(err))
		return nil, err
	}

	studiesClient, err := studiesapi.New(appCfg.RestAPIURL, appCfg.RestAPITimeout, logger)
	if err != nil {
		logger.Error("studies client init failed", zap.Error(err))
		return nil, err
	}

	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	var limiter *ratelimit.SignInLimiter
	if appCfg.LoginRatePerMinute > 0 {
		limiter = ratelimit.NewSignInLimiter(appCfg.LoginRatePerMinute)
		deps.bg.setLimiter(limiter)
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()
	profiles := profilestore.New(db)
	routeGuard := guard.New(sessionMgr, authz.NewResolver(profiles, logger), audit, logger)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(csrfProtect(appCfg.SessionKey, secure))

	// Global auth middleware: loads SessionUser into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	// Set before any Mount so sub-routers inherit it.
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, authConfigured, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	r.Get("/access-denied", errorsHandler.AccessDenied)

	// Authentication
	loginHandler := loginfeature.NewHandler(authConfigured, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	googleHandler := authgooglefeature.NewHandler(authgooglefeature.Config{
		ClientID:     appCfg.GoogleClientID,
		ClientSecret: appCfg.GoogleClientSecret,
		BaseURL:      appCfg.BaseURL,
	}, sessionMgr, profiles, oauthstate.New(db), limiter, audit, logger)
	r.Mount("/auth", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	profileHandler := profilefeature.NewHandler(db, flashStore, secure, errLog, logger)
	profileHandler.Sessions = sessionMgr
	profilefeature.PublicRoutes(r, profileHandler)

	// Signed-in pages
	r.Group(func(pr chi.Router) {
		pr.Use(routeGuard.Require)

		assignmentsfeature.Routes(pr, assignmentsfeature.NewHandler(db, errLog, logger))
		agendasfeature.Routes(pr, agendasfeature.NewHandler(db, errLog, logger))
		docsfeature.Routes(pr, docsfeature.NewHandler(db, errLog, logger))
		submissionsfeature.Routes(pr, submissionsfeature.NewHandler(db, flashStore, errLog, logger))
		studiesfeature.Routes(pr, studiesfeature.NewHandler(studiesClient, logger))
		profilefeature.Routes(pr, profileHandler)

		adminHandler := adminfeature.NewHandler(db, flashStore, audit, authConfigured, errLog, logger)
		pr.Mount("/admin", adminfeature.Routes(adminHandler))
	})

	return r, nil
}

// csrfProtect guards every state-changing form. Plain-HTTP development
// requests are marked so gorilla/csrf skips its HTTPS-only referer check.
func csrfProtect(sessionKey string, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		auth.DeriveKey(sessionKey, "csrf", 32),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
