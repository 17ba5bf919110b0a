package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the console and the reference backend.
const (
	CodeCredentialRejected = "CREDENTIAL_REJECTED"
	CodeRoleMismatch       = "ROLE_MISMATCH"
	CodeUnknownRole        = "UNKNOWN_ROLE"
	CodeFetchError         = "FETCH_ERROR"
	CodeServerRejected     = "SERVER_REJECTED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeActionInFlight     = "ACTION_IN_FLIGHT"

	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
)

// ConsoleError standardizes application errors.
type ConsoleError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *ConsoleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConsoleError) Unwrap() error {
	return e.Err
}

// NewConsoleError constructs a ConsoleError.
func NewConsoleError(code, message string, status int, details map[string]any) *ConsoleError {
	return &ConsoleError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewCredentialRejected reports a failed credential exchange.
func NewCredentialRejected(err error) error {
	return &ConsoleError{
		Code:       CodeCredentialRejected,
		Message:    "login failed",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewRoleMismatch reports a valid credential whose server role differs from the claimed one.
func NewRoleMismatch(claimed, actual string) error {
	return NewConsoleError(CodeRoleMismatch,
		fmt.Sprintf("no user found in %q role", claimed),
		http.StatusForbidden,
		map[string]any{"claimed": claimed, "actual": actual})
}

func NewUnknownRole(role string) error {
	return NewConsoleError(CodeUnknownRole, "unknown role", 0, map[string]any{"role": role})
}

// NewFetchError wraps a transport failure.
func NewFetchError(method, path string, err error) error {
	return &ConsoleError{
		Code:    CodeFetchError,
		Message: fmt.Sprintf("%s %s failed", method, path),
		Details: map[string]any{"method": method, "path": path},
		Err:     err,
	}
}

// NewServerRejected reports a 4xx/5xx response.
func NewServerRejected(status int, message string, details map[string]any) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return NewConsoleError(CodeServerRejected, message, status, details)
}

func NewValidationError(message string, details map[string]any) error {
	return NewConsoleError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewActionInFlight(action string) error {
	return NewConsoleError(CodeActionInFlight, fmt.Sprintf("%s already in progress", action), 0,
		map[string]any{"action": action})
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &ConsoleError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewConsoleError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewConsoleError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewConsoleError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &ConsoleError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToConsoleError converts generic errors to ConsoleError.
func ToConsoleError(err error) *ConsoleError {
	if err == nil {
		return nil
	}
	var consoleErr *ConsoleError
	if errors.As(err, &consoleErr) {
		return consoleErr
	}
	return &ConsoleError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf returns the code of the first ConsoleError in err's chain, or "".
func CodeOf(err error) string {
	var consoleErr *ConsoleError
	if errors.As(err, &consoleErr) {
		return consoleErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
