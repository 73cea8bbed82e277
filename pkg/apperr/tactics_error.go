package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Validation errors
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"

	// Resource errors
	CodeNotFound = "NOT_FOUND"

	// External errors
	CodeExternalError = "EXTERNAL_ERROR"
	CodeInvalidOutput = "INVALID_OUTPUT"

	// Internal errors
	CodeInternalError = "INTERNAL_ERROR"
	CodeConfigError   = "CONFIG_ERROR"
	CodeTimeout       = "TIMEOUT"
)

// AppError is a coded error that maps onto an HTTP status.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key to Details and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError.
func New(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

// Wrap builds an AppError around err.
func Wrap(err error, code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

// BadRequest is a malformed request body or parameter.
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// ValidationFailed wraps a validator error list.
func ValidationFailed(message string, err error) *AppError {
	return Wrap(err, CodeValidationFailed, message, http.StatusBadRequest)
}

// InvalidInput names the offending field.
func InvalidInput(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("invalid input for '%s': %s", field, reason), http.StatusBadRequest).
		WithDetail("field", field)
}

// NotFound reports a missing resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ExternalError wraps a remote provider failure.
func ExternalError(service string, err error) *AppError {
	return Wrap(err, CodeExternalError, fmt.Sprintf("external service error: %s", service), http.StatusBadGateway).
		WithDetail("service", service)
}

// InvalidOutput reports a provider result that failed output-shape validation.
func InvalidOutput(service string, err error) *AppError {
	return Wrap(err, CodeInvalidOutput, fmt.Sprintf("invalid output from %s", service), http.StatusBadGateway).
		WithDetail("service", service)
}

// Internal reports a broken invariant.
func Internal(message string, err error) *AppError {
	if message == "" {
		message = "internal server error"
	}
	return Wrap(err, CodeInternalError, message, http.StatusInternalServerError)
}

// ConfigError reports unusable configuration.
func ConfigError(message string) *AppError {
	return New(CodeConfigError, message, http.StatusInternalServerError)
}

// Timeout reports an operation that ran out of time.
func Timeout(operation string) *AppError {
	return New(CodeTimeout, fmt.Sprintf("operation timed out: %s", operation), http.StatusGatewayTimeout)
}

// AsAppError unwraps an AppError, or wraps err as INTERNAL_ERROR.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("", err)
}

// HasCode reports whether err is an AppError with code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// GetHTTPStatus returns the status for err, 500 for plain errors.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
