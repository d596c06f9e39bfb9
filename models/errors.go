package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeNoSession    = "NO_SESSION"
	ErrCodeInternal     = "INTERNAL_ERROR"

	// Upstream summarization API error codes.
	ErrCodeUpstreamNotFound     = "PDF_NOT_FOUND"
	ErrCodeUpstreamAuth         = "UPSTREAM_AUTH_REQUIRED"
	ErrCodeUpstreamForbidden    = "UPSTREAM_FORBIDDEN"
	ErrCodeUpstreamInternal     = "UPSTREAM_INTERNAL_ERROR"
	ErrCodeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamFailure      = "UPSTREAM_FAILURE"
	ErrCodeUpstreamUnreachable  = "UPSTREAM_UNREACHABLE"
	ErrCodeUpstreamBadResponse  = "UPSTREAM_BAD_RESPONSE"
	ErrCodeUpstreamTimeout      = "UPSTREAM_TIMEOUT"
	ErrCodeFeedbackNotPersisted = "FEEDBACK_NOT_SAVED"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenieError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type GenieError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *GenieError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GenieError) Unwrap() error {
	return e.Err
}

// NewGenieError creates a new GenieError.
func NewGenieError(code, message string, err error) *GenieError {
	return &GenieError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *GenieError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// AsGenieError unwraps err to a GenieError, wrapping unknown errors as
// internal errors.
func AsGenieError(err error) *GenieError {
	var ge *GenieError
	if errors.As(err, &ge) {
		return ge
	}
	return NewGenieError(ErrCodeInternal, err.Error(), err)
}
