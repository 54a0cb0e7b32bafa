package auth

import "errors"

var (
	ErrNotAuthenticated   = errors.New("user not authenticated")
	ErrSessionExpired     = errors.New("session expired, sign in again")
	ErrInvalidCredentials = errors.New("invalid login: check e-mail/password or confirm your e-mail")
	ErrServiceUnavailable = errors.New("auth service unavailable, try again")
	ErrMissingCredentials = errors.New("email and password are required")
)
