package forms

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UserForm maps validation failures on user forms to human readable messages.
// Only the first violated rule is reported.
type UserForm struct{}

// RegisterForm contains the fields required to create an account
type RegisterForm struct {
	Name     string `form:"name" json:"name" binding:"required,min=3,max=100"`
	Username string `form:"username" json:"username" binding:"required,min=3,max=50"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=8,max=72"`
}

// LoginForm contains the credentials for login; Identifier is a username or
// an email, used interchangeably for the lookup
type LoginForm struct {
	Identifier string `form:"identifier" json:"identifier" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
}

// UpdatePasswordForm contains the fields required to change a password
type UpdatePasswordForm struct {
	CurrentPassword string `form:"currentPassword" json:"currentPassword" binding:"required"`
	NewPassword     string `form:"newPassword" json:"newPassword" binding:"required,min=8,max=72"`
}

// UpdateProfileForm contains the optional profile fields; at least one must
// be present, which is checked by the service since the tags cannot express it
type UpdateProfileForm struct {
	Name     string `form:"name" json:"name" binding:"omitempty,min=3,max=100"`
	Username string `form:"username" json:"username" binding:"omitempty,min=3,max=50"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
}

// Name returns the error message for name field validation
func (f UserForm) Name(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your name"
	case "min", "max":
		return "Name should be at least 3 characters long"
	default:
		return "Something went wrong, please try again later"
	}
}

// Username returns the error message for username field validation
func (f UserForm) Username(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter a username"
	case "min", "max":
		return "Username should be at least 3 characters long"
	default:
		return "Something went wrong, please try again later"
	}
}

// Email returns the error message for email field validation
func (f UserForm) Email(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your email"
	case "min", "max", "email":
		return "Please enter a valid email"
	default:
		return "Something went wrong, please try again later"
	}
}

// Password returns the error message for password field validation
func (f UserForm) Password(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your password"
	case "min", "max":
		return "Password should be at least 8 characters long"
	default:
		return "Something went wrong, please try again later"
	}
}

// Identifier returns the error message for identifier field validation
func (f UserForm) Identifier(tag string) (message string) {
	switch tag {
	case "required":
		return "Username or email is required"
	default:
		return "Something went wrong, please try again later"
	}
}

func (f UserForm) message(err validator.FieldError) string {
	switch err.Field() {
	case "Name":
		return f.Name(err.Tag())
	case "Username":
		return f.Username(err.Tag())
	case "Email":
		return f.Email(err.Tag())
	case "Password", "NewPassword":
		return f.Password(err.Tag())
	case "CurrentPassword":
		if err.Tag() == "required" {
			return "Current password is required"
		}
		return "Something went wrong, please try again later"
	case "Identifier":
		return f.Identifier(err.Tag())
	default:
		return "Something went wrong, please try again later"
	}
}

// First maps a binding error from any user form to the message for the first
// violated rule
func (f UserForm) First(err error) string {
	switch err.(type) {
	case validator.ValidationErrors:

		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return "Something went wrong, please try again later"
		}

		for _, err := range err.(validator.ValidationErrors) {
			return f.message(err)
		}

	default:
		return "Invalid request"
	}

	return "Something went wrong, please try again later"
}
