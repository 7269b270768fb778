package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is identified but does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected failure must not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrConflict indicates an optimistic concurrency loss: the row changed since it was read.
var ErrConflict = errors.New("document changed, please reload")

// ErrInvalidTransition indicates the requested action is not legal for the current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDocumentLocked indicates a field mutation on a document that is no longer a draft.
var ErrDocumentLocked = errors.New("document can no longer be modified")

// Access token errors. They are never distinguished towards anonymous recipients.
var (
	ErrTokenNotFound    = errors.New("access token not found")
	ErrTokenExpired     = errors.New("access token expired")
	ErrTokenAlreadyUsed = errors.New("access token already used")
	// ErrTokenEntityMismatch wraps ErrTokenNotFound so callers treat both the same way.
	ErrTokenEntityMismatch = fmt.Errorf("%w: bound to a different entity", ErrTokenNotFound)
)

// IsTokenError reports whether err is any of the access token errors.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenNotFound) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenAlreadyUsed)
}

// AppError carries an HTTP-ish status code and a safe message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
