package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Session is the server-side record we persist for a browser session.
// ID is an opaque session identifier (random UUID) carried in a cookie.
//
// Email and Name are copied from the user record at login time. They are a
// snapshot, not a live reference: if the user record changes afterward, the
// session data may go stale relative to the credential store.
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Expired reports whether the session TTL has elapsed at the given instant.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
