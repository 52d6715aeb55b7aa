package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/db"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/models"
	"github.com/avinashankur/user-accounts-backend/service"
	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthController handles token verification, refresh and logout
type AuthController struct {
	auth   *service.AuthService
	tokens *service.TokenService
	db     db.Database
}

// NewAuthController creates and returns a new AuthController instance
func NewAuthController(auth *service.AuthService, tokens *service.TokenService, database db.Database) *AuthController {
	return &AuthController{auth: auth, tokens: tokens, db: database}
}

// RequireAuth verifies the access token from the accessToken cookie or the
// Authorization header, resolves the account and stores it in the request
// context. Requests without a valid token are aborted with 401 before the
// handler runs.
func (ctrl *AuthController) RequireAuth(c *gin.Context) {
	token := extractAccessToken(c)
	if token == "" {
		fail(c, unauthorized())
		return
	}

	claims, err := ctrl.tokens.VerifyAccessToken(token)
	if err != nil {
		fail(c, err)
		return
	}

	id, err := models.ParseUserID(claims.UserID)
	if err != nil {
		fail(c, unauthorized())
		return
	}

	user, err := ctrl.db.FindByID(c.Request.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		fail(c, unauthorized())
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// Refresh rotates the session: the presented refresh token is exchanged for
// a new access/refresh pair and the old one becomes unusable
func (ctrl *AuthController) Refresh(c *gin.Context) {
	presented, _ := c.Cookie(refreshCookie)
	if presented == "" {
		var form forms.RefreshForm
		_ = c.ShouldBindJSON(&form)
		presented = form.RefreshToken
	}

	pair, err := ctrl.auth.Refresh(c.Request.Context(), presented)
	if err != nil {
		fail(c, err)
		return
	}

	setAuthCookies(c, pair)
	respond(c, http.StatusOK, "Access token refreshed", pair)
}

// Logout clears the stored refresh token and both session cookies
func (ctrl *AuthController) Logout(c *gin.Context) {
	user := currentUser(c)

	if err := ctrl.auth.Logout(c.Request.Context(), user.ID); err != nil {
		fail(c, err)
		return
	}

	clearAuthCookies(c)
	respond(c, http.StatusOK, "User logged out successfully", nil)
}

// extractAccessToken reads the token from the cookie, falling back to the
// Authorization: Bearer header
func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookie); err == nil && cookie != "" {
		return cookie
	}

	bearer := c.GetHeader("Authorization")
	if parts := strings.SplitN(bearer, " ", 2); len(parts) == 2 {
		return parts[1]
	}
	return ""
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(userContextKey).(models.User)
}

func unauthorized() error {
	return apperr.Unauthenticated("Unauthorized")
}
