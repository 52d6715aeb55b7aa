package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/avinashankur/user-accounts-backend/config"
	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/kv"
	"github.com/avinashankur/user-accounts-backend/models"
	"github.com/avinashankur/user-accounts-backend/service"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}
}

func newAuthService(t *testing.T) (*service.AuthService, *db.Memory) {
	t.Helper()

	store := db.NewMemory()
	tokens := service.NewTokenService(testConfig())
	return service.NewAuthService(store, tokens, service.BcryptHasher{}), store
}

func newUserService(t *testing.T) (*service.UserService, *db.Memory, *kv.Memory) {
	t.Helper()

	store := db.NewMemory()
	cache := kv.NewMemory()
	return service.NewUserService(store, service.BcryptHasher{}, cache), store, cache
}

func registerForm(name, username, email string) forms.RegisterForm {
	return forms.RegisterForm{
		Name:     name,
		Username: username,
		Email:    email,
		Password: "password123",
	}
}

func mustRegister(t *testing.T, auth *service.AuthService, username, email string) (models.User, models.TokenPair) {
	t.Helper()

	user, pair, err := auth.Register(context.Background(), registerForm("Ann Lee", username, email))
	require.NoError(t, err)
	return user, pair
}

func mustCreateUser(t *testing.T, store *db.Memory, username, email, password string) models.User {
	t.Helper()

	hash, err := service.BcryptHasher{}.Hash(password)
	require.NoError(t, err)

	user, err := store.CreateUser(context.Background(), db.CreateUser{
		Name:     "Ann Lee",
		Username: username,
		Email:    email,
		PwdHash:  hash,
	})
	require.NoError(t, err)
	return user
}
