package models

import (
	jwt "github.com/golang-jwt/jwt/v4"
)

// TokenPair is the access/refresh token pair returned to clients on login,
// registration and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessClaims is the payload of an access token. It carries enough identity
// to serve a request without extra lookups beyond resolving the account.
type AccessClaims struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token: just the account id.
// Whether the token is still the account's current one is decided against
// the stored refresh_token field, not the claims.
type RefreshClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
