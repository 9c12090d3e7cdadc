package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for workflow tests without codegen.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/membergate/internal/domain/auth"
	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
	"github.com/target/membergate/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.UserRepository = (*MemoryUserRepo)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
)

// notFoundError mirrors the redis adapter's sentinel shape.
type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

// ErrSessionNotFound is returned when a session is not present in the store.
var ErrSessionNotFound error = notFoundError{}

// MemorySessionStore is an in-memory session store safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Expired(time.Now()) {
		return domainauth.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MemoryUserRepo is an in-memory user repository. Like the real storage it
// performs no uniqueness check on email, so tests can create duplicates to
// exercise the ambiguous-lookup path.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []model.User
}

// NewMemoryUserRepo creates an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) Insert(_ context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	out := user
	return &out, nil
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.User
	for _, u := range r.users {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *MemoryUserRepo) SetAdmin(_ context.Context, id string, admin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Admin = admin
			return nil
		}
	}
	return apperrors.NotFound("user not found")
}

// Count reports the number of stored users.
func (r *MemoryUserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// PlainHasher "hashes" by prefixing the plaintext. It keeps workflow tests
// fast and lets assertions inspect what was stored. Never use outside tests.
type PlainHasher struct{}

func (PlainHasher) Hash(plaintext string) (string, error) {
	return "plain:" + plaintext, nil
}

func (PlainHasher) Verify(plaintext, hash string) bool {
	return hash == "plain:"+plaintext
}
