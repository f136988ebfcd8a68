package models

import "time"

// Session is an authenticated caller context. Its lifetime is fixed at
// creation; there is no renewal.
type Session struct {
	ID            string
	UserName      string
	Role          Role
	EstablishedAt time.Time
	ExpiresAt     time.Time
}

// Expired reports whether the session is dead at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) Identity() Identity {
	return Identity{UserName: s.UserName, Role: s.Role}
}
