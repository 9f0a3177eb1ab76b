// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers of PantryKeeper. Callers
// should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Signup conflicts.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already registered")

	// Auth errors. ErrInvalidCredentials covers bad logins and rejected
	// tokens alike; ErrMissingCredentials means no token was supplied.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("missing credentials")

	// Token errors (invalid or malformed token, lifecycle).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
