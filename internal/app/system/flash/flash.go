// internal/app/system/flash/flash.go
package flash

import (
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Kinds of message.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Message is one status line shown once after a redirect.
type Message struct {
	Kind string
	Text string
}

func init() {
	gob.Register(Message{})
}

// Store keeps one-shot messages in a signed cookie.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	log     *zap.Logger
}

// New builds a flash Store. secure controls the Secure cookie flag.
func New(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Store, error) {
	if sessionKey == "" {
		return nil, errors.New("flash: session key is empty")
	}
	if name == "" {
		name = "humorproject-flash"
	}
	cs := sessions.NewCookieStore([]byte(sessionKey))
	cs.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs, name: name, log: logger}, nil
}

// Add queues a message for the next page view.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, kind, text string) {
	if s == nil {
		return
	}
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		// A stale or tampered cookie yields a fresh session; keep going.
		s.log.Debug("flash cookie unreadable", zap.Error(err))
	}
	sess.AddFlash(Message{Kind: kind, Text: text})
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("failed to save flash", zap.Error(err))
	}
}

// Success queues a success message.
func (s *Store) Success(w http.ResponseWriter, r *http.Request, text string) {
	s.Add(w, r, KindSuccess, text)
}

// Error queues an error message.
func (s *Store) Error(w http.ResponseWriter, r *http.Request, text string) {
	s.Add(w, r, KindError, text)
}

// Pop returns and clears queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if s == nil {
		return nil
	}
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("failed to clear flash", zap.Error(err))
	}
	out := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			out = append(out, m)
		}
	}
	return out
}
