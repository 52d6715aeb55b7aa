package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/models"
)

// AuthService orchestrates registration, login and the refresh-token
// lifecycle. An account has at most one usable refresh token: login and
// refresh both overwrite it, logout clears it.
type AuthService struct {
	db     db.Database
	tokens *TokenService
	hasher PasswordHasher
}

func NewAuthService(database db.Database, tokens *TokenService, hasher PasswordHasher) *AuthService {
	return &AuthService{
		db:     database,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates the account and starts its first session. The email and
// username existence checks are a fast path; the storage layer's unique
// indexes settle concurrent registrations.
func (s *AuthService) Register(ctx context.Context, form forms.RegisterForm) (models.User, models.TokenPair, error) {
	var pair models.TokenPair

	if _, err := s.db.FindByEmail(ctx, form.Email); err == nil {
		return models.User{}, pair, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, db.ErrNotFound) {
		return models.User{}, pair, apperr.Internal(err)
	}

	if _, err := s.db.FindByUsername(ctx, form.Username); err == nil {
		return models.User{}, pair, apperr.Conflict("Username already exists")
	} else if !errors.Is(err, db.ErrNotFound) {
		return models.User{}, pair, apperr.Internal(err)
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return models.User{}, pair, apperr.Internal(err)
	}

	user, err := s.db.CreateUser(ctx, db.CreateUser{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		PwdHash:  hash,
	})
	if errors.Is(err, db.ErrDuplicate) {
		return models.User{}, pair, apperr.Conflict("Username or email already exists")
	}
	if err != nil {
		return models.User{}, pair, apperr.Internal(err)
	}

	pair, err = s.startSession(ctx, user)
	if err != nil {
		return models.User{}, pair, err
	}

	slog.Info("user registered", "user_id", user.ID.Hex(), "username", user.Username)
	return user, pair, nil
}

// Login checks the credentials against the account matching the identifier
// (username or email) and starts a fresh session, invalidating any previous
// refresh token.
func (s *AuthService) Login(ctx context.Context, form forms.LoginForm) (models.User, models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.db.FindByIdentifier(ctx, form.Identifier)
	if errors.Is(err, db.ErrNotFound) {
		return models.User{}, pair, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, pair, apperr.Internal(err)
	}

	if err := s.hasher.Compare(user.Password, form.Password); err != nil {
		return models.User{}, pair, apperr.Unauthenticated("Invalid password")
	}

	pair, err = s.startSession(ctx, user)
	if err != nil {
		return models.User{}, pair, err
	}

	slog.Info("user logged in", "user_id", user.ID.Hex())
	return user, pair, nil
}

// Refresh rotates the session. The presented token must pass signature and
// expiry checks and match the account's stored refresh token exactly; a
// superseded token fails the equality check even while its signature is
// still valid, which is what catches replay of rotated tokens.
func (s *AuthService) Refresh(ctx context.Context, presented string) (models.TokenPair, error) {
	var pair models.TokenPair

	if presented == "" {
		return pair, apperr.Unauthenticated("Refresh token is required")
	}

	claims, err := s.tokens.VerifyRefreshToken(presented)
	if err != nil {
		return pair, err
	}

	id, err := models.ParseUserID(claims.UserID)
	if err != nil {
		return pair, apperr.Unauthenticated("Invalid refresh token")
	}

	user, err := s.db.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return pair, apperr.Unauthenticated("Invalid refresh token")
	}
	if err != nil {
		return pair, apperr.Internal(err)
	}

	if user.RefreshToken != presented {
		return pair, apperr.Unauthenticated("Refresh token is expired or used")
	}

	return s.startSession(ctx, user)
}

// Logout clears the account's refresh token, ending the session.
func (s *AuthService) Logout(ctx context.Context, id models.UserID) error {
	if err := s.db.SetRefreshToken(ctx, id, ""); err != nil {
		return apperr.Internal(err)
	}

	slog.Info("user logged out", "user_id", id.Hex())
	return nil
}

// startSession issues a fresh token pair and persists the refresh token,
// overwriting whatever was stored before (the login transition).
func (s *AuthService) startSession(ctx context.Context, user models.User) (models.TokenPair, error) {
	var pair models.TokenPair

	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return pair, err
	}

	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return pair, err
	}

	if err := s.db.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		slog.Error("failed to persist refresh token", "error", err, "user_id", user.ID.Hex())
		return pair, apperr.Internal(err)
	}

	pair.AccessToken = access
	pair.RefreshToken = refresh
	return pair, nil
}
