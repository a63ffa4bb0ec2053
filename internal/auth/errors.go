package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken means no bearer token was presented.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidToken means the token failed verification or has expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)
