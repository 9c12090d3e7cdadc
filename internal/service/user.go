package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
	"github.com/target/membergate/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  ports.UserRepository
	Logger *slog.Logger // Optional
}

// UserService exposes the admin-facing user operations: listing accounts and
// toggling the admin flag.
type UserService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Users == nil {
		panic("UserService requires a user repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{users: opts.Users, logger: logger}
}

// List returns all user records for the admin view.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ToggleAdmin flips the admin flag on the user with the given email and
// returns the updated record. A lookup matching zero or several records
// aborts the toggle with a NotFound error.
//
// Two concurrent toggles for the same email race at the storage layer
// (read-modify-write is not atomic); the last write wins.
func (s *UserService) ToggleAdmin(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.ValidationField("email", "Missing email")
	}

	matches, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(matches) != 1 {
		s.logger.InfoContext(ctx, "admin toggle rejected", "reason", "user not found")
		return nil, apperrors.NotFound("user not found")
	}

	user := matches[0]
	user.Admin = !user.Admin
	if err := s.users.SetAdmin(ctx, user.ID, user.Admin); err != nil {
		return nil, fmt.Errorf("set admin flag: %w", err)
	}

	s.logger.InfoContext(ctx, "admin flag toggled", "user_id", user.ID, "admin", user.Admin)
	return &user, nil
}

// IsAdmin reports whether the user identified by email currently has the
// admin flag set. This consults the credential store rather than trusting
// any session snapshot.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	matches, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	if len(matches) != 1 {
		return false, nil
	}
	return matches[0].Admin, nil
}
