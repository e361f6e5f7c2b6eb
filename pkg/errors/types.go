package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Recording errors
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeNotRecording     ErrorCode = "NOT_RECORDING"

	// Resource errors
	ErrCodeBusy     ErrorCode = "BUSY"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Transcription job errors
	ErrCodeNetwork   ErrorCode = "NETWORK"
	ErrCodeService   ErrorCode = "SERVICE"
	ErrCodeRemoteJob ErrorCode = "REMOTE_JOB"
	ErrCodeTimedOut  ErrorCode = "TIMED_OUT"
	ErrCodeCancelled ErrorCode = "CANCELLED"

	// Persistence errors
	ErrCodeStoreWrite ErrorCode = "STORE_WRITE"
	ErrCodeDatabase   ErrorCode = "DATABASE"

	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// getDefaultHTTPCode returns the default HTTP status code for an error code
func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeBusy:
		return http.StatusConflict
	case ErrCodeNotRecording, ErrCodeValidation, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodePermissionDenied:
		return http.StatusForbidden
	case ErrCodeTimedOut:
		return http.StatusGatewayTimeout
	case ErrCodeNetwork, ErrCodeService, ErrCodeRemoteJob:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// Busy creates a resource-contention error
func Busy(resource string) *AppError {
	return New(ErrCodeBusy, fmt.Sprintf("%s is already in use", resource)).
		WithDetail("resource", resource)
}

// PermissionDenied creates a microphone permission error
func PermissionDenied() *AppError {
	return New(ErrCodePermissionDenied, "microphone permission not granted")
}

// NotRecording creates an error for stopping an inactive capture
func NotRecording() *AppError {
	return New(ErrCodeNotRecording, "no capture session is active")
}

// NotFound creates a not found error
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// NetworkError creates an error for a failed transport-level call
func NetworkError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeNetwork, fmt.Sprintf("network failure during %s", operation)).
		WithDetail("operation", operation)
}

// ServiceError creates an error for a non-2xx or malformed remote response
func ServiceError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeService, fmt.Sprintf("transcription service rejected %s", operation)).
		WithDetail("operation", operation)
}

// RemoteJobError creates an error for a remote job that finished with status=error
func RemoteJobError(jobID, reason string) *AppError {
	return New(ErrCodeRemoteJob, fmt.Sprintf("remote transcription failed: %s", reason)).
		WithDetail("remote_job_id", jobID)
}

// TimedOut creates an error for an exceeded polling ceiling
func TimedOut(attempts int, elapsed string) *AppError {
	return New(ErrCodeTimedOut, fmt.Sprintf("transcription not ready after %d polls (%s)", attempts, elapsed)).
		WithDetail("attempts", attempts)
}

// StoreWriteError creates an error for a failed local persistence write
func StoreWriteError(collection string, cause error) *AppError {
	return Wrap(cause, ErrCodeStoreWrite, fmt.Sprintf("writing %s record failed", collection)).
		WithDetail("collection", collection)
}

// ValidationError creates a validation error
func ValidationError(field string, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabase, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("configuration error for '%s': %s", key, reason)).
		WithDetail("key", key).
		WithDetail("reason", reason)
}

// Is checks if an error carries a specific code anywhere in its chain
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
