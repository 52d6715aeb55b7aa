package db

import (
	"context"
	"errors"

	"github.com/avinashankur/user-accounts-backend/models"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicate is returned when a write violates the username or email
	// uniqueness constraint. The storage layer is the final arbiter; the
	// services' existence pre-checks are a fast path only.
	ErrDuplicate = errors.New("username or email already exists")
)

// Database is the account repository consumed by the services.
type Database interface {
	FindByID(ctx context.Context, id models.UserID) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// FindByIdentifier looks the account up by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)

	// SearchByText returns up to limit accounts whose name, username or
	// email contains the substring, case-insensitively.
	SearchByText(ctx context.Context, query string, limit int64) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)

	CreateUser(ctx context.Context, user CreateUser) (models.User, error)
	UpdateUser(ctx context.Context, id models.UserID, fields UserUpdate) (models.User, error)

	// SetRefreshToken overwrites the account's current refresh token; an
	// empty token clears the session.
	SetRefreshToken(ctx context.Context, id models.UserID, token string) error

	Ping(ctx context.Context) error
}

// CreateUser holds the fields for a new account document.
type CreateUser struct {
	Name     string
	Username string
	Email    string
	PwdHash  string
}

// UserUpdate holds a partial account update; nil fields are left untouched.
type UserUpdate struct {
	Name     *string
	Username *string
	Email    *string
	PwdHash  *string
}
