package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/target/membergate/internal/data/pgxutil"
	"github.com/target/membergate/internal/domain/model"
	apperrors "github.com/target/membergate/internal/errors"
)

// ErrUserNotFound is returned when a user lookup by ID matches nothing.
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, email, password_hash, admin, created_at`

// UserRepo provides database operations for user records.
//
// The users table deliberately carries no uniqueness constraint on email;
// FindByEmail therefore returns a slice and the service layer decides how to
// treat ambiguous matches.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Insert stores a new user record and returns the stored row.
func (r *UserRepo) Insert(ctx context.Context, user model.User) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (username, email, password_hash, admin)
			VALUES ($1, $2, $3, $4)
			RETURNING `+userColumns,
			strings.TrimSpace(user.Username),
			strings.TrimSpace(user.Email),
			user.PasswordHash,
			user.Admin,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// FindByEmail returns every user record whose email matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) ([]model.User, error) {
	var out []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at`,
			strings.TrimSpace(email),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// FindAll returns all user records ordered by creation time.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// SetAdmin persists a new admin flag for the user with the given ID.
//
// Concurrent toggles for the same user race at this statement; the later
// write wins. That is accepted behavior for a low-stakes boolean flag.
func (r *UserRepo) SetAdmin(ctx context.Context, id string, admin bool) error {
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, `UPDATE users SET admin = $2 WHERE id = $1`, id, admin)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}
		return nil
	}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperrors.NotFound("user not found")
		}
		return apperrors.MapDBError(err)
	}
	return nil
}
