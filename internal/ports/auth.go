package ports

// Package ports defines interfaces (hexagonal ports) for the auth gateway's
// collaborators. Implementations live in internal/adapters and internal/data;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/membergate/internal/domain/auth"
	"github.com/target/membergate/internal/domain/model"
)

// UserRepository persists and retrieves user records (the credential store).
type UserRepository interface {
	// Insert stores a new user record and returns it with storage-assigned fields.
	Insert(ctx context.Context, user model.User) (*model.User, error)

	// FindByEmail returns every record whose email matches. Email carries no
	// uniqueness constraint, so callers must treat any result count other
	// than one as "not found".
	FindByEmail(ctx context.Context, email string) ([]model.User, error)

	// FindAll returns all user records.
	FindAll(ctx context.Context) ([]model.User, error)

	// SetAdmin persists a new value for the admin flag on the user with the
	// given ID.
	SetAdmin(ctx context.Context, id string, admin bool) error
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher computes and verifies one-way salted password hashes.
// The cost factor is fixed at construction so tests can inject a cheap one.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash using a comparison that
	// does not leak timing information about partial matches.
	Verify(plaintext, hash string) bool
}
