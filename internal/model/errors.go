package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by stores on a unique constraint violation.
	ErrConflict = errors.New("already exists")
	// ErrTokenInactive is returned when a refresh token is revoked or expired.
	ErrTokenInactive = errors.New("refresh token is not active")
	// ErrLimitExceeded is returned when an account holds the maximum number of API keys.
	ErrLimitExceeded = errors.New("api key limit exceeded")
)
