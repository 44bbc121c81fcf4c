// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dalemusser/humorproject/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls sign-in, sign-out and session events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls content writes and role changes made in the admin console.
	// Same values as Auth.
	Admin string
}

// Logger records audit events to MongoDB and/or zap.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// clientIP uses the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ProfileID != "" {
		fields = append(fields, zap.String("user_id", event.ProfileID))
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}
	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if (setting == "all" || setting == "db") && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) auth(ctx context.Context, r *http.Request, event audit.Event) {
	event.Category = audit.CategoryAuth
	event.IP = clientIP(r)
	event.UserAgent = r.UserAgent()
	l.Log(ctx, event)
}

// --- Authentication Events ---

// LoginSuccess logs a completed sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, profileID, email, provider string) {
	l.auth(ctx, r, audit.Event{
		EventType: audit.EventLoginSuccess,
		ProfileID: profileID,
		Email:     email,
		Success:   true,
		Details:   map[string]string{"provider": provider},
	})
}

// LoginFailed logs a callback that could not finish sign-in.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.auth(ctx, r, audit.Event{
		EventType:     audit.EventLoginFailed,
		Email:         email,
		FailureReason: reason,
	})
}

// LoginRejectedDomain logs a sign-in refused because of the email domain.
func (l *Logger) LoginRejectedDomain(ctx context.Context, r *http.Request, email string) {
	l.auth(ctx, r, audit.Event{
		EventType:     audit.EventLoginRejectedDomain,
		Email:         email,
		FailureReason: "email domain not allowed",
	})
}

// LoginRateLimited logs a sign-in start refused by the limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request) {
	l.auth(ctx, r, audit.Event{
		EventType:     audit.EventLoginRateLimited,
		FailureReason: "rate limit exceeded",
	})
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, profileID, email string) {
	l.auth(ctx, r, audit.Event{
		EventType: audit.EventLogout,
		ProfileID: profileID,
		Email:     email,
		Success:   true,
	})
}

// SessionExpired logs a protected request whose refresh token was rejected.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request) {
	l.auth(ctx, r, audit.Event{
		EventType:     audit.EventSessionExpired,
		FailureReason: "invalid refresh token",
		Details:       map[string]string{"path": r.URL.Path},
	})
}

// SessionDomainRevoked logs a live session signed out by the domain check.
func (l *Logger) SessionDomainRevoked(ctx context.Context, r *http.Request, profileID, email string) {
	l.auth(ctx, r, audit.Event{
		EventType:     audit.EventSessionDomainRevoked,
		ProfileID:     profileID,
		Email:         email,
		FailureReason: "email domain not allowed",
	})
}

// --- Admin Events ---

// ContentChanged logs a create, update or delete in the admin console.
// eventType is one of the audit.Event*Created/Updated/Deleted constants.
func (l *Logger) ContentChanged(ctx context.Context, r *http.Request, actorID, eventType, targetID, title string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"target_id": targetID, "title": title},
	})
}

// SuperAdminChanged logs a superadmin grant or revoke.
func (l *Logger) SuperAdminChanged(ctx context.Context, r *http.Request, actorID, profileID, email string, granted bool) {
	eventType := audit.EventSuperAdminRevoked
	if granted {
		eventType = audit.EventSuperAdminGranted
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		ProfileID: profileID,
		Email:     email,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}
