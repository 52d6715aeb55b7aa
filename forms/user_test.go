package forms

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestRegisterFormMessages(t *testing.T) {
	v := newValidator()
	form := UserForm{}

	cases := []struct {
		name    string
		input   RegisterForm
		message string
	}{
		{
			name:    "short name",
			input:   RegisterForm{Name: "Jo", Username: "annlee", Email: "ann@x.com", Password: "password123"},
			message: "Name should be at least 3 characters long",
		},
		{
			name:    "short username",
			input:   RegisterForm{Name: "Ann Lee", Username: "an", Email: "ann@x.com", Password: "password123"},
			message: "Username should be at least 3 characters long",
		},
		{
			name:    "bad email",
			input:   RegisterForm{Name: "Ann Lee", Username: "annlee", Email: "not-an-email", Password: "password123"},
			message: "Please enter a valid email",
		},
		{
			name:    "short password",
			input:   RegisterForm{Name: "Ann Lee", Username: "annlee", Email: "ann@x.com", Password: "short"},
			message: "Password should be at least 8 characters long",
		},
		{
			name:    "missing password",
			input:   RegisterForm{Name: "Ann Lee", Username: "annlee", Email: "ann@x.com"},
			message: "Please enter your password",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.message, form.First(err))
		})
	}
}

func TestRegisterFormValid(t *testing.T) {
	v := newValidator()

	err := v.Struct(RegisterForm{Name: "Ann Lee", Username: "annlee", Email: "ann@x.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestLoginFormMessages(t *testing.T) {
	v := newValidator()
	form := UserForm{}

	err := v.Struct(LoginForm{Password: "password123"})
	require.Error(t, err)
	assert.Equal(t, "Username or email is required", form.First(err))

	err = v.Struct(LoginForm{Identifier: "annlee"})
	require.Error(t, err)
	assert.Equal(t, "Please enter your password", form.First(err))
}

func TestUpdatePasswordFormMessages(t *testing.T) {
	v := newValidator()
	form := UserForm{}

	err := v.Struct(UpdatePasswordForm{NewPassword: "newpassword456"})
	require.Error(t, err)
	assert.Equal(t, "Current password is required", form.First(err))

	err = v.Struct(UpdatePasswordForm{CurrentPassword: "password123", NewPassword: "short"})
	require.Error(t, err)
	assert.Equal(t, "Password should be at least 8 characters long", form.First(err))
}

func TestUpdateProfileFormOptionalFields(t *testing.T) {
	v := newValidator()

	// All fields absent passes the tags; the service rejects the empty
	// update.
	assert.NoError(t, v.Struct(UpdateProfileForm{}))

	assert.NoError(t, v.Struct(UpdateProfileForm{Name: "Ann B. Lee"}))
	assert.Error(t, v.Struct(UpdateProfileForm{Username: "an"}))
	assert.Error(t, v.Struct(UpdateProfileForm{Email: "not-an-email"}))
}
