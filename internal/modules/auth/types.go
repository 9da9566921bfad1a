package auth

import "errors"

var (
	errUsernameTaken = errors.New("username already taken")
	// errInvalidCredentials deliberately covers both an unknown username
	// and a wrong password so the two cases stay indistinguishable.
	errInvalidCredentials = errors.New("invalid username or password")
)

// RegisterDTO is the request body for account registration.
type RegisterDTO struct {
	Username        string `json:"username"        binding:"required,min=3,max=50"`
	Password        string `json:"password"        binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginDTO is the request body for login.
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// identityResponse is the public identity returned by register and login.
type identityResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
