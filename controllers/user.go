package controllers

import (
	"net/http"

	"github.com/avinashankur/user-accounts-backend/apperr"
	"github.com/avinashankur/user-accounts-backend/forms"
	"github.com/avinashankur/user-accounts-backend/service"
	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests and responses
type UserController struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUserController creates and returns a new UserController instance
func NewUserController(auth *service.AuthService, users *service.UserService) *UserController {
	return &UserController{auth: auth, users: users}
}

var userForm = new(forms.UserForm)

// Register creates a new account and starts its first session
func (ctrl *UserController) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, apperr.Validation(userForm.First(err)))
		return
	}

	user, pair, err := ctrl.auth.Register(c.Request.Context(), form)
	if err != nil {
		fail(c, err)
		return
	}

	setAuthCookies(c, pair)
	respond(c, http.StatusCreated, "User created successfully", user)
}

// Login authenticates by username or email and returns the account with a
// fresh token pair
func (ctrl *UserController) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, apperr.Validation(userForm.First(err)))
		return
	}

	user, pair, err := ctrl.auth.Login(c.Request.Context(), form)
	if err != nil {
		fail(c, err)
		return
	}

	setAuthCookies(c, pair)
	respond(c, http.StatusOK, "User logged in successfully", gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Me returns the authenticated account
func (ctrl *UserController) Me(c *gin.Context) {
	user, err := ctrl.users.CurrentUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Current user fetched", user)
}

// All returns every account
func (ctrl *UserController) All(c *gin.Context) {
	users, err := ctrl.users.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Users fetched", users)
}

// UpdatePassword changes the password after checking the current one
func (ctrl *UserController) UpdatePassword(c *gin.Context) {
	var form forms.UpdatePasswordForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, apperr.Validation(userForm.First(err)))
		return
	}

	user, err := ctrl.users.UpdatePassword(c.Request.Context(), currentUser(c).ID, form)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Password changed successfully", user)
}

// Update applies the provided profile field changes
func (ctrl *UserController) Update(c *gin.Context) {
	var form forms.UpdateProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fail(c, apperr.Validation(userForm.First(err)))
		return
	}

	user, err := ctrl.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, form)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "User updated successfully", user)
}

// Search returns up to five accounts matching the substring query
func (ctrl *UserController) Search(c *gin.Context) {
	users, err := ctrl.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "Users fetched successfully", gin.H{"users": users})
}

// GetByUsername is the public profile lookup
func (ctrl *UserController) GetByUsername(c *gin.Context) {
	user, err := ctrl.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, "User fetched successfully", user)
}
