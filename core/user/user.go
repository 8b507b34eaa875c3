// Package user provides the user identity entity and its PostgreSQL
// repository. Registration and login are delegated to database stored
// procedures which own password hashing and account policy; this package
// only invokes them and relays their account-specific errors.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/querypad/querypad/integration/database/pg"
)

// User is the public identity profile. These are the fields denormalized
// into the session record at login so per-request validation avoids a join.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Verified bool      `json:"is_verified"`
}

// Repository reads user rows and invokes the auth stored procedures.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a user repository backed by the given pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByID returns the public profile fields for a user. Performed once at
// session creation, not per-request.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, role, is_verified FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Role, &u.Verified)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate invokes the auth_login stored procedure. The procedure
// verifies the password server-side and raises account-specific errors
// which are relayed as sentinels, not interpreted.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, role, is_verified FROM auth_login($1, $2)`,
		username, password,
	).Scan(&u.ID, &u.Username, &u.Role, &u.Verified)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, relayAuthError(err)
	}
	return u, nil
}

// Register invokes the auth_register stored procedure, which hashes the
// password and creates the account, and returns the new user row.
func (r *Repository) Register(ctx context.Context, username, password string) (User, error) {
	var u User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, role, is_verified FROM auth_register($1, $2)`,
		username, password,
	).Scan(&u.ID, &u.Username, &u.Role, &u.Verified)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicateAccount
		}
		return User{}, relayAuthError(err)
	}
	return u, nil
}

// relayAuthError maps errors raised by the stored procedures onto stable
// sentinels by their SQLSTATE, keeping the original error in the chain.
func relayAuthError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeAccountLocked:
		return errors.Join(ErrAccountLocked, err)
	case codeWeakPassword:
		return errors.Join(ErrWeakPassword, err)
	case codeInvalidCredentials:
		return errors.Join(ErrInvalidCredentials, err)
	default:
		return err
	}
}
