package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	domainauth "github.com/target/membergate/internal/domain/auth"
	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
	"github.com/target/membergate/internal/ports"
)

// DefaultSessionTTL is the sliding session expiry window applied on login.
const DefaultSessionTTL = time.Hour

var errSessionExpired = errors.New("session expired")

// AuthStores groups the two persistence ports used by AuthService.
type AuthStores struct {
	Users    ports.UserRepository
	Sessions ports.SessionStore
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Stores     AuthStores
	Hasher     ports.PasswordHasher
	SessionTTL time.Duration // zero means DefaultSessionTTL
}

// AuthService orchestrates signup, login, and the session lifecycle.
// It never caches user records beyond a single call.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Stores.Users == nil {
		panic("AuthService requires a user repository")
	}
	if opts.Stores.Sessions == nil {
		panic("AuthService requires a session store")
	}
	if opts.Hasher == nil {
		panic("AuthService requires a password hasher")
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		users:      opts.Stores.Users,
		sessions:   opts.Stores.Sessions,
		hasher:     opts.Hasher,
		sessionTTL: ttl,
		logger:     slog.Default(),
	}
}

// Signup validates the signup form, hashes the password, and inserts a new
// user with the admin flag off. No session is created; the user logs in
// explicitly afterward. Validation failures leave storage untouched.
func (s *AuthService) Signup(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	user, err := s.users.Insert(ctx, model.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Admin:        false,
	})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", user.ID)
	return user, nil
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and, on success, creates an authenticated
// session with a fresh TTL and persists it.
//
// A lookup that matches zero records and one that matches several are both
// reported as the same NotFound error so the caller cannot distinguish them.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domainauth.Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || utf8.RuneCountInString(email) > model.EmailMaxLen {
		return nil, apperrors.ValidationField("email", "Enter a valid email address")
	}

	matches, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(matches) != 1 {
		s.logger.InfoContext(ctx, "login rejected", "reason", "user not found")
		return nil, apperrors.NotFound("User Not Found")
	}

	user := matches[0]
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.logger.InfoContext(ctx, "login rejected", "reason", "incorrect password")
		return nil, apperrors.Authentication("Incorrect password")
	}

	session := domainauth.Session{
		ID:            uuid.New().String(),
		Authenticated: true,
		Email:         user.Email,
		Name:          user.Username,
		ExpiresAt:     time.Now().Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.logger.InfoContext(ctx, "login succeeded", "user_id", user.ID)
	return &session, nil
}

// GetSession retrieves a session by ID. Expired sessions are deleted and
// reported as missing.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session. Logging out an absent session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to log out
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// SessionTTL returns the sliding expiry window, for cookie MaxAge.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
