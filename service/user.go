package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/kv"
	"github.com/avinashankur/user-accounts-backend/models"
)

const (
	searchLimit = 5

	profileCachePrefix = "profile:"
	profileCacheTTL    = 5 * time.Minute
)

// UserService handles profile operations: lookup, search, profile and
// password updates. Public profile lookups go through the key-value cache.
type UserService struct {
	db     db.Database
	hasher PasswordHasher
	cache  kv.KeyValueStore
}

func NewUserService(database db.Database, hasher PasswordHasher, cache kv.KeyValueStore) *UserService {
	return &UserService{
		db:     database,
		hasher: hasher,
		cache:  cache,
	}
}

// CurrentUser returns the account for the authenticated identity.
func (s *UserService) CurrentUser(ctx context.Context, id models.UserID) (models.User, error) {
	user, err := s.db.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.User{}, apperr.Unauthenticated("User not authenticated")
	}
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}
	return user, nil
}

// UpdatePassword re-hashes and stores the new password after checking the
// current one. A failed check leaves the stored hash untouched.
func (s *UserService) UpdatePassword(ctx context.Context, id models.UserID, form forms.UpdatePasswordForm) (models.User, error) {
	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if err := s.hasher.Compare(user.Password, form.CurrentPassword); err != nil {
		return models.User{}, apperr.Unauthenticated("Invalid current password")
	}

	hash, err := s.hasher.Hash(form.NewPassword)
	if err != nil {
		slog.Error("failed to hash password", "error", err, "user_id", id.Hex())
		return models.User{}, apperr.Internal(err)
	}

	updated, err := s.db.UpdateUser(ctx, id, db.UserUpdate{PwdHash: &hash})
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	slog.Info("password changed", "user_id", id.Hex())
	return updated, nil
}

// UpdateProfile applies the provided name/username/email changes. Changed
// username and email values are pre-checked against other accounts; the
// storage layer's unique indexes remain the final arbiter.
func (s *UserService) UpdateProfile(ctx context.Context, id models.UserID, form forms.UpdateProfileForm) (models.User, error) {
	if form.Name == "" && form.Username == "" && form.Email == "" {
		return models.User{}, apperr.Validation("No valid fields provided for update")
	}

	user, err := s.CurrentUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	update := db.UserUpdate{}

	if form.Email != "" && form.Email != user.Email {
		if err := s.checkAvailable(ctx, s.db.FindByEmail, form.Email, id, "Email already in use"); err != nil {
			return models.User{}, err
		}
		update.Email = &form.Email
	}

	if form.Username != "" && form.Username != user.Username {
		if err := s.checkAvailable(ctx, s.db.FindByUsername, form.Username, id, "Username already in use"); err != nil {
			return models.User{}, err
		}
		update.Username = &form.Username
	}

	if form.Name != "" {
		update.Name = &form.Name
	}

	updated, err := s.db.UpdateUser(ctx, id, update)
	if errors.Is(err, db.ErrDuplicate) {
		return models.User{}, apperr.Conflict("Username or email already in use")
	}
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	s.invalidateProfile(user.Username)
	if updated.Username != user.Username {
		s.invalidateProfile(updated.Username)
	}

	return updated, nil
}

func (s *UserService) checkAvailable(ctx context.Context, find func(context.Context, string) (models.User, error), value string, self models.UserID, conflict string) error {
	other, err := find(ctx, value)
	if err == nil && other.ID != self {
		return apperr.Conflict(conflict)
	}
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return apperr.Internal(err)
	}
	return nil
}

// Search returns up to five accounts whose name, username or email contains
// the query, case-insensitively.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	if query == "" {
		return nil, apperr.Validation("Search query is required")
	}

	users, err := s.db.SearchByText(ctx, query, searchLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// GetByUsername is the public profile lookup, served cache-aside.
func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if cached, err := s.cache.Get(profileCachePrefix + username); err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return user, nil
		}
	}

	user, err := s.db.FindByUsername(ctx, username)
	if errors.Is(err, db.ErrNotFound) {
		return models.User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, apperr.Internal(err)
	}

	// The JSON encoding strips the hash and refresh token, so the cached
	// copy only ever holds public fields.
	if raw, err := json.Marshal(user); err == nil {
		if err := s.cache.Set(profileCachePrefix+username, string(raw), profileCacheTTL); err != nil {
			slog.Debug("profile cache set failed", "error", err, "username", username)
		}
	}

	return user, nil
}

// ListAll returns every account. No pagination; matches the exposed API.
func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	users, err := s.db.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

func (s *UserService) invalidateProfile(username string) {
	if _, err := s.cache.Del(profileCachePrefix + username); err != nil {
		slog.Debug("profile cache invalidation failed", "error", err, "username", username)
	}
}
