// Package apperrors holds the sentinel errors shared by the store, the
// services and the HTTP layer.
package apperrors

import "errors"

// Lookup and write conflicts
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrRecordNotFound        = errors.New("record not found")
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrIDSpaceExhausted      = errors.New("student ID space exhausted")
)

// Sign-in and token checks
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")
)

// Input errors. ErrMalformedRecord is a data file line that does not decode;
// the others are caller input.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrMalformedRecord  = errors.New("malformed record")
)

// ErrUnsupported marks capabilities that exist in the interface but are not
// available in this deployment, such as faculty-side record edits.
var ErrUnsupported = errors.New("operation not supported")

// CustomError carries a user-facing message over one of the sentinels
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails sets per-field context, e.g. validation messages
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError wraps err with message
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewNotFoundError reports a missing record, e.g. an attendance row
func NewNotFoundError(message string) error {
	return NewCustomError(ErrRecordNotFound, message)
}

// NewValidationError reports rejected input
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}

// NewUnsupportedError reports that capability is unavailable
func NewUnsupportedError(capability string) error {
	e := NewCustomError(ErrUnsupported, capability+" is not available")
	e.Code = "UNSUPPORTED"
	return e
}

// Is reports whether err matches any of targets
func Is(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
