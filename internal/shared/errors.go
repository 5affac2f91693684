package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates a registration against an already used email.
	ErrDuplicateEmail = errors.New("user with this email already exists")
	// ErrUserNotFound indicates a login attempt for an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a password mismatch on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid token")
)
