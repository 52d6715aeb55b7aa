package service_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/config"
	"github.com/avinashankur/user-accounts-backend/models"
	"github.com/avinashankur/user-accounts-backend/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	return models.User{
		ID:       models.NewUserID(),
		Name:     "Ann Lee",
		Username: "annlee",
		Email:    "ann@x.com",
	}
}

func TestAccessTokenRoundtrip(t *testing.T) {
	tokens := service.NewTokenService(testConfig())
	user := testUser()

	signed, err := tokens.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.VerifyAccessToken(signed)
	require.NoError(t, err)

	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.NotEmpty(t, claims.ID, "jti should be set")
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	tokens := service.NewTokenService(testConfig())
	user := testUser()

	signed, err := tokens.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := tokens.VerifyRefreshToken(signed)
	require.NoError(t, err)

	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tokens := service.NewTokenService(testConfig())

	other := testConfig()
	other.AccessSecret = "a-different-secret"

	signed, err := tokens.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = service.NewTokenService(other).VerifyAccessToken(signed)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.From(err).Status)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTL = -time.Minute
	tokens := service.NewTokenService(cfg)

	signed, err := tokens.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = tokens.VerifyAccessToken(signed)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.From(err).Status)
}

func TestSecretsAreSeparatedByTokenClass(t *testing.T) {
	tokens := service.NewTokenService(testConfig())

	refresh, err := tokens.IssueRefreshToken(testUser())
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = tokens.VerifyAccessToken(refresh)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperr.From(err).Status)
}

func TestMissingSecretIsConfigError(t *testing.T) {
	tokens := service.NewTokenService(config.Config{
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})

	_, err := tokens.IssueAccessToken(testUser())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Status)

	_, err = tokens.IssueRefreshToken(testUser())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Status)

	_, err = tokens.VerifyAccessToken("whatever")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.From(err).Status)
}
