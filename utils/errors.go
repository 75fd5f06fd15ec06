package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Each maps to a fixed HTTP status and a propagation
// policy: validation and not-found errors are returned immediately and
// never retried, configuration errors fail fast, upstream and
// persistence errors surface as 500 so the calling gateway retries.
const (
	KindValidation    = "validation"
	KindConfiguration = "configuration"
	KindNotFound      = "not_found"
	KindUpstream      = "upstream"
	KindPersistence   = "persistence"
)

// AppError represents an application error
type AppError struct {
	Kind    string `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError creates a 400 error for malformed or missing request fields
func ValidationError(message string, err error) *AppError {
	return &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: message, Err: err}
}

// ConfigurationError creates a 500 error for missing credentials or environment
func ConfigurationError(message string, err error) *AppError {
	return &AppError{Kind: KindConfiguration, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// NotFoundError creates a 404 error for an absent order or resource
func NotFoundError(message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: message, Err: err}
}

// UpstreamError creates a 500 error for a failed gateway or channel call
func UpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// PersistenceError creates a 500 error for a failed store write. The
// triggering event must not be acknowledged so the gateway retries.
func PersistenceError(message string, err error) *AppError {
	return &AppError{Kind: KindPersistence, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// GetAppError returns the AppError if err is (or wraps) one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isKind(err error, kind string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return isKind(err, KindValidation) }

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool { return isKind(err, KindConfiguration) }

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool { return isKind(err, KindNotFound) }

// IsUpstreamError checks if an error is an upstream call failure
func IsUpstreamError(err error) bool { return isKind(err, KindUpstream) }

// IsPersistenceError checks if an error is a store write failure
func IsPersistenceError(err error) bool { return isKind(err, KindPersistence) }

// ErrorStatus returns the HTTP status for err, defaulting to 500
func ErrorStatus(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
