package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeAuthorization ErrorType = "authorization"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeRateLimit     ErrorType = "rate_limit"
	ErrorTypeDatabase      ErrorType = "database"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents a custom application error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StatusCode int                    `json:"status_code"`
	Timestamp  time.Time              `json:"timestamp"`
	Retryable  bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if target == nil {
		return false
	}

	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}

	return errors.Is(e.Cause, target)
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, code, message string, statusCode int) *AppError {
	return &AppError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now(),
		Retryable:  errorType == ErrorTypeDatabase || errorType == ErrorTypeInternal,
	}
}

// Validation errors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewAppError(ErrorTypeValidation, "VALIDATION_ERROR", message, http.StatusBadRequest).
		WithDetails(details)
}

func NewInvalidFieldError(field, value string) *AppError {
	return NewValidationError(
		fmt.Sprintf("Invalid value for %s: %s", field, value),
		map[string]interface{}{"field": field, "value": value},
	)
}

func NewInvalidReactionTypeError(reactionType string) *AppError {
	return NewInvalidFieldError("reaction type", reactionType)
}

func NewInvalidTargetKindError(kind string) *AppError {
	return NewInvalidFieldError("target kind", kind)
}

func NewEmptyCommentError() *AppError {
	return NewValidationError("Comment text must not be empty", nil)
}

// Not found errors
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewTargetNotFoundError() *AppError {
	return NewNotFoundError("Target")
}

func NewCommentNotFoundError() *AppError {
	return NewNotFoundError("Comment")
}

func NewNotificationNotFoundError() *AppError {
	return NewNotFoundError("Notification")
}

func NewUserNotFoundError() *AppError {
	return NewNotFoundError("User")
}

// Authorization errors
func NewAuthorizationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthorization, "FORBIDDEN", message, http.StatusForbidden)
}

func NewCommentDeleteForbiddenError() *AppError {
	return NewAuthorizationError("Only the comment author or the target owner may delete a comment")
}

func NewAuthenticationError(message string) *AppError {
	return NewAppError(ErrorTypeAuthorization, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// Conflict errors
func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, "CONFLICT", message, http.StatusConflict)
}

// Rate limit errors
func NewRateLimitError(message string) *AppError {
	return NewAppError(ErrorTypeRateLimit, "RATE_LIMIT_EXCEEDED", message, http.StatusTooManyRequests)
}

// Database errors
func NewDatabaseError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeDatabase, "DATABASE_ERROR", message, http.StatusInternalServerError).
		WithCause(cause)
}

// Internal errors
func NewInternalError(message string, cause error) *AppError {
	return NewAppError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError).
		WithCause(cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts an AppError from err, or nil
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound reports whether err is a not-found AppError
func IsNotFound(err error) bool {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Type == ErrorTypeNotFound
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetErrorCode returns the error code for an error
func GetErrorCode(err error) string {
	if appErr := AsAppError(err); appErr != nil {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}
