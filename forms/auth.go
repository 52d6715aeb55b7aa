package forms

// RefreshForm carries a refresh token presented in the request body. The
// token may also arrive via the refreshToken cookie, so the field itself is
// optional; the controller rejects the request when both are absent.
type RefreshForm struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}
