// Package apierror defines the error kinds returned by credential operations.
package apierror

import (
	"errors"
	"fmt"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidationFailed   Kind = "ValidationFailed"
	KindConflict           Kind = "Conflict"
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindAccountLocked      Kind = "AccountLocked"
	KindAccountInactive    Kind = "AccountInactive"
	KindInvalidToken       Kind = "InvalidToken"
	KindInvalidAPIKey      Kind = "InvalidAPIKey"
	KindNotFound           Kind = "NotFound"
	KindLimitExceeded      Kind = "LimitExceeded"
	KindUnimplemented      Kind = "Unimplemented"
	KindUnauthenticated    Kind = "Unauthenticated"
	KindPermissionDenied   Kind = "PermissionDenied"
	KindInternal           Kind = "Internal"
)

// APIError is an expected failure that is safe to show to callers.
type APIError struct {
	Kind    Kind
	Message string
	Errors  []string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches another APIError of the same kind, so errors.Is(err, NewErrInvalidToken())
// works regardless of message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or KindInternal when err is not an APIError.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// As extracts the APIError from err. Non-API errors become an Internal error wrapping err.
func As(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewErrInternalServerError(err)
}

func NewErrValidation(errs []string) *APIError {
	return &APIError{Kind: KindValidationFailed, Message: "Validation failed", Errors: errs}
}

func NewErrConflict() *APIError {
	return &APIError{Kind: KindConflict, Message: "User with this email or username already exists"}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindInvalidCredentials, Message: "Invalid credentials"}
}

func NewErrIncorrectPassword() *APIError {
	return &APIError{Kind: KindInvalidCredentials, Message: "Current password is incorrect"}
}

func NewErrAccountLocked() *APIError {
	return &APIError{Kind: KindAccountLocked, Message: "Account is temporarily locked due to too many failed login attempts"}
}

func NewErrAccountInactive() *APIError {
	return &APIError{Kind: KindAccountInactive, Message: "Account is deactivated"}
}

func NewErrInvalidToken() *APIError {
	return &APIError{Kind: KindInvalidToken, Message: "Invalid refresh token"}
}

func NewErrInvalidAPIKey() *APIError {
	return &APIError{Kind: KindInvalidAPIKey, Message: "Invalid API key"}
}

func NewErrUserNotFound() *APIError {
	return &APIError{Kind: KindNotFound, Message: "User not found"}
}

func NewErrAPIKeyNotFound() *APIError {
	return &APIError{Kind: KindNotFound, Message: "API key not found"}
}

func NewErrAPIKeyLimit(limit int) *APIError {
	return &APIError{Kind: KindLimitExceeded, Message: fmt.Sprintf("Maximum number of API keys reached (%d)", limit)}
}

func NewErrNotImplemented(feature string) *APIError {
	return &APIError{Kind: KindUnimplemented, Message: fmt.Sprintf("%s not implemented yet", feature)}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindUnauthenticated, Message: "missing authorization token"}
}

func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Kind: KindUnauthenticated, Message: "invalid authorization token"}
}

func NewErrPermissionDenied(reason string) *APIError {
	return &APIError{Kind: KindPermissionDenied, Message: reason}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{Kind: KindInternal, Message: "An internal error occurred", Err: err}
}
