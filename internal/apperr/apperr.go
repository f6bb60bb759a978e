// Package apperr classifies errors that are safe to show to API callers.
package apperr

import (
	"errors"
	"net/http"
)

// Classification codes returned to callers alongside error messages.
const (
	CodeBadInput     = "BAD_USER_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Error is a user-facing failure. Its message is surfaced verbatim.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// BadInput reports a validation failure, missing record or uniqueness conflict.
func BadInput(message string) error {
	return &Error{Code: CodeBadInput, Message: message}
}

// Unauthorized reports a protected operation invoked without a resolved identity.
func Unauthorized() error {
	return &Error{Code: CodeUnauthorized, Message: "Unauthorized"}
}

// CodeOf returns the classification code of err; unclassified errors are internal.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsBadInput reports whether err is classified as BAD_USER_INPUT.
func IsBadInput(err error) bool {
	return CodeOf(err) == CodeBadInput
}

// IsUnauthorized reports whether err is classified as UNAUTHORIZED.
func IsUnauthorized(err error) bool {
	return CodeOf(err) == CodeUnauthorized
}

// HTTPStatus maps a classification code onto an HTTP status.
func HTTPStatus(code string) int {
	switch code {
	case CodeBadInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
