package controllers

import (
	"github.com/avinashankur/user-accounts-backend/models"
	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

// setAuthCookies attaches the pair as HTTP-only, secure session cookies.
func setAuthCookies(c *gin.Context, pair models.TokenPair) {
	c.SetCookie(accessCookie, pair.AccessToken, 0, "/", "", true, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, 0, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", true, true)
}
