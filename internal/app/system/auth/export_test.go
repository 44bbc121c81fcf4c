package auth

import "time"

// SetClock replaces the manager's clock.
func (m *SessionManager) SetClock(now func() time.Time) { m.now = now }
