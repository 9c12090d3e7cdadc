package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/target/membergate/internal/errors"
)

const (
	// UsernameMinLen and UsernameMaxLen bound the display name.
	UsernameMinLen = 3
	UsernameMaxLen = 30

	// PasswordMinLen and PasswordMaxLen bound the plaintext password at signup.
	PasswordMinLen = 3
	PasswordMaxLen = 20

	// EmailMaxLen bounds the login identifier at login time.
	EmailMaxLen = 30
)

// User is a registered account. Email is the login lookup key but is not
// enforced unique at the storage level; lookups that match more than one
// record are treated the same as no match. PasswordHash is a bcrypt hash,
// never the plaintext, and is stripped before the record reaches a view.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Username     string    `json:"username"   db:"username"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	Admin        bool      `json:"admin"      db:"admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest contains the raw signup form fields.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup fields. Presence is checked first in the order
// username, email, password, short-circuiting on the first missing field so
// the caller can report a field-specific message. Shape checks follow in the
// same order. Returns a validation AppError with Field set, or nil.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return apperrors.ValidationField("username", "Missing name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.ValidationField("email", "Missing email")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "Missing password")
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(r.Username)); n < UsernameMinLen || n > UsernameMaxLen {
		return apperrors.ValidationField("username",
			"Name must be between 3 and 30 characters")
	}
	if !ValidEmail(r.Email) {
		return apperrors.ValidationField("email", "Enter a valid email address")
	}
	if n := utf8.RuneCountInString(r.Password); n < PasswordMinLen || n > PasswordMaxLen {
		return apperrors.ValidationField("password",
			"Password must be between 3 and 20 characters")
	}
	return nil
}

// ValidEmail reports whether s parses as a bare RFC 5322 address.
// Display names ("Alice <a@x.com>") are rejected.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
