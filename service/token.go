package service

import (
	"log/slog"
	"time"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/config"
	"github.com/avinashankur/user-accounts-backend/models"
	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenService issues and verifies the two token classes. Access and refresh
// tokens are signed with distinct secrets so a leak of one does not
// compromise the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

// IssueAccessToken signs a short-lived token carrying the account identity.
func (s *TokenService) IssueAccessToken(user models.User) (string, error) {
	if len(s.accessSecret) == 0 {
		return "", apperr.Config("Access token secret not configured")
	}

	claims := models.AccessClaims{
		UserID:           user.ID.Hex(),
		Name:             user.Name,
		Email:            user.Email,
		Username:         user.Username,
		RegisteredClaims: registeredClaims(s.accessTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		slog.Error("failed to sign access token", "error", err, "user_id", user.ID.Hex())
		return "", apperr.Internal(err)
	}
	return token, nil
}

// IssueRefreshToken signs a longer-lived token carrying only the account id.
func (s *TokenService) IssueRefreshToken(user models.User) (string, error) {
	if len(s.refreshSecret) == 0 {
		return "", apperr.Config("Refresh token secret not configured")
	}

	claims := models.RefreshClaims{
		UserID:           user.ID.Hex(),
		RegisteredClaims: registeredClaims(s.refreshTTL),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		slog.Error("failed to sign refresh token", "error", err, "user_id", user.ID.Hex())
		return "", apperr.Internal(err)
	}
	return token, nil
}

// VerifyAccessToken checks signature and expiry and returns the claims.
func (s *TokenService) VerifyAccessToken(token string) (*models.AccessClaims, error) {
	if len(s.accessSecret) == 0 {
		return nil, apperr.Config("Access token secret not configured")
	}

	claims := &models.AccessClaims{}
	if err := s.parse(token, claims, s.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks signature and expiry and returns the claims.
// Whether the token is still the account's current one is the auth service's
// concern.
func (s *TokenService) VerifyRefreshToken(token string) (*models.RefreshClaims, error) {
	if len(s.refreshSecret) == 0 {
		return nil, apperr.Config("Refresh token secret not configured")
	}

	claims := &models.RefreshClaims{}
	if err := s.parse(token, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		e := apperr.Unauthenticated("Invalid or expired token")
		e.Err = err
		return e
	}
	return nil
}

func registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
