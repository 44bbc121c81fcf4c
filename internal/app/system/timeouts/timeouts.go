// Package timeouts holds the deadlines handlers put on database and
// outbound calls.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list pages and joined reads
//   - Long: writes that touch more than one collection
package timeouts

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

// Config overrides defaults. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

var current atomic.Pointer[Config]

func init() { Reset() }

func get() Config { return *current.Load() }

// Ping is the health-check deadline.
func Ping() time.Duration { return get().Ping }

// Short is the single-document deadline.
func Short() time.Duration { return get().Short }

// Medium is the list-page deadline.
func Medium() time.Duration { return get().Medium }

// Long is the multi-collection write deadline.
func Long() time.Duration { return get().Long }

// Configure applies non-zero values from cfg. Call it during startup.
func Configure(cfg Config) {
	next := get()
	if cfg.Ping > 0 {
		next.Ping = cfg.Ping
	}
	if cfg.Short > 0 {
		next.Short = cfg.Short
	}
	if cfg.Medium > 0 {
		next.Medium = cfg.Medium
	}
	if cfg.Long > 0 {
		next.Long = cfg.Long
	}
	current.Store(&next)
}

// Reset restores defaults.
func Reset() {
	current.Store(&Config{Ping: DefaultPing, Short: DefaultShort, Medium: DefaultMedium, Long: DefaultLong})
}

// WithShort derives a context bounded by Short.
func WithShort(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Short())
}

// WithMedium derives a context bounded by Medium.
func WithMedium(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Medium())
}

// WithLong derives a context bounded by Long.
func WithLong(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Long())
}
