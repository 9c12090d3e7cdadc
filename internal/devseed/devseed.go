package devseed

// Package devseed inserts a default admin account on a fresh development
// database so the admin view is reachable without manual SQL. It is only
// invoked when the application runs in dev mode.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/membergate/internal/domain/model"
	"github.com/target/membergate/internal/ports"
	"github.com/target/membergate/internal/service"
)

const (
	seedUsername = "admin"
	seedEmail    = "admin@localhost.localdomain"
	seedPassword = "admin123"
)

// Deps groups what seeding needs.
type Deps struct {
	Auth   *service.AuthService
	Users  ports.UserRepository
	Logger *slog.Logger
}

// Run seeds the default admin if the seed email is not yet taken.
// Safe to call on every startup.
func Run(ctx context.Context, deps Deps) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	existing, err := deps.Users.FindByEmail(ctx, seedEmail)
	if err != nil {
		return fmt.Errorf("check seed user: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	user, err := deps.Auth.Signup(ctx, model.CreateUserRequest{
		Username: seedUsername,
		Email:    seedEmail,
		Password: seedPassword,
	})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if err := deps.Users.SetAdmin(ctx, user.ID, true); err != nil {
		return fmt.Errorf("seed admin flag: %w", err)
	}

	logger.InfoContext(ctx, "seeded dev admin user", "email", seedEmail)
	return nil
}
