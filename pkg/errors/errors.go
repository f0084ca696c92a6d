// pkg/errors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Error types
const (
	ErrValidation            = "VALIDATION_ERROR"
	ErrInvalidFileType       = "INVALID_FILE_TYPE"
	ErrFileTooLarge          = "FILE_TOO_LARGE"
	ErrTransport             = "TRANSPORT_ERROR"
	ErrSafetyBlocked         = "SAFETY_BLOCKED"
	ErrRateLimited           = "RATE_LIMITED"
	ErrUpstreamMisconfigured = "UPSTREAM_MISCONFIGURED"
	ErrPersistence           = "PERSISTENCE_ERROR"
	ErrInsufficientCredits   = "INSUFFICIENT_CREDITS"
	ErrUnauthorized          = "UNAUTHORIZED"
	ErrNotFound              = "NOT_FOUND"
	ErrBadRequest            = "BAD_REQUEST"
	ErrInternalServer        = "INTERNAL_SERVER_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Type       string `json:"type"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(errorType string, statusCode int, message string, details ...string) *AppError {
	var detail string
	if len(details) > 0 {
		detail = details[0]
	}

	return &AppError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Details:    detail,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// GetStatusCode extracts the status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 500 // Default to internal server error
}

// GetMessage extracts the user-facing message from an error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Helper functions to create common errors
func NewValidationError(message string) *AppError {
	return NewAppError(ErrValidation, 400, message)
}

func NewInvalidFileTypeError() *AppError {
	return NewAppError(ErrInvalidFileType, 400, "Invalid file type. Please upload a JPEG or PNG image.")
}

func NewFileTooLargeError() *AppError {
	return NewAppError(ErrFileTooLarge, 400, "File is too large. The maximum size is 10MB.")
}

func NewSafetyBlockedError() *AppError {
	return NewAppError(ErrSafetyBlocked, 422,
		"The generation was blocked for safety reasons. This can sometimes happen with images of people. Please try a different photo.")
}

func NewRateLimitedError() *AppError {
	return NewAppError(ErrRateLimited, 429,
		"The service is currently experiencing high traffic. Please wait a moment and try again.")
}

func NewTransportError(details string) *AppError {
	return NewAppError(ErrTransport, 502, "Could not reach the generation service. Please try again.", details)
}

func NewUpstreamMisconfiguredError(message string) *AppError {
	return NewAppError(ErrUpstreamMisconfigured, 500, message)
}

func NewPersistenceError(details string) *AppError {
	return NewAppError(ErrPersistence, 500, "Could not save your account data", details)
}

func NewInsufficientCreditsError() *AppError {
	return NewAppError(ErrInsufficientCredits, 402, "You have no credits left. Please purchase a plan to continue.")
}
