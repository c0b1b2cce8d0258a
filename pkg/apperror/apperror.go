package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrSingletonViolation = errors.New("singleton violation")
	ErrRateLimited        = errors.New("rate limited")
	ErrImportFailed       = errors.New("import failed")
	ErrUnavailable        = errors.New("service unavailable")
	ErrInternal           = errors.New("internal server error")
	ErrUnauthorized       = errors.New("unauthorized")
)

const genericInternalMessage = "An internal server error occurred"

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
	// Fields maps offending input fields to a message. Only set for invalid input.
	Fields map[string]string
	// RetryAfter is set for rate limited errors.
	RetryAfter time.Duration
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

// NewValidation reports field level failures. fields must not be empty.
func NewValidation(fields map[string]string) *AppError {
	e := NewAppError(ErrInvalidInput, "Validation failed", fmt.Sprintf("%d invalid field(s)", len(fields)), nil)
	e.Fields = fields
	return e
}

func NewFieldError(field, msg string) *AppError {
	return NewValidation(map[string]string{field: msg})
}

func NewDuplicateKey(resource, field, value string) *AppError {
	msg := fmt.Sprintf("%s already exists", resource)
	details := fmt.Sprintf("%s with %s '%s' already exists", resource, field, value)
	return NewAppError(ErrDuplicateKey, msg, details, nil)
}

func NewSingletonViolation(resource string) *AppError {
	msg := fmt.Sprintf("Only one %s instance is allowed", resource)
	return NewAppError(ErrSingletonViolation, msg, resource+" already exists", nil)
}

func NewRateLimited(retryAfter time.Duration) *AppError {
	e := NewAppError(ErrRateLimited, "Too many requests, please try again later", "", nil)
	e.RetryAfter = retryAfter
	return e
}

func NewImportFailed(err error) *AppError {
	return NewAppError(ErrImportFailed, "Portfolio import failed", "import transaction rolled back", err)
}

func NewUnavailable(details string) *AppError {
	return NewAppError(ErrUnavailable, "Service unavailable", details, nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, genericInternalMessage, details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewAuthRequired(details string) *AppError {
	return NewAppError(ErrUnauthorized, "Authentication credentials were not provided or are invalid", details, nil)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrSingletonViolation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ToJSON renders the client facing body. Causes and details never leave the process.
func (e *AppError) ToJSON() gin.H {
	body := gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
	if len(e.Fields) > 0 {
		body["fields"] = e.Fields
	}
	return body
}

// From converts any error into an AppError, hiding unknown errors behind a generic internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("unhandled error", err)
}
