package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrDuplicate   = errors.New("duplicate")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrConfig      = errors.New("configuration error")
	ErrStorage     = errors.New("storage error")
	ErrUpstream    = errors.New("upstream unavailable")
)

type AppError struct {
	Err     error  // sentinel category
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Duplicate reports an already-registered unique value. Unlike most REST
// APIs this maps to 400, not 409 — the dashboard treats it as a plain
// form-validation failure.
func Duplicate(message string) *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: message,
	}
}

func RateLimited() *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: "Rate limit exceeded. Please try again later.",
	}
}

// ConfigMissing reports an absent required credential or setting.
// HTTP handlers map this to 500 — misconfiguration is an operator problem,
// never the caller's.
func ConfigMissing(name string) *AppError {
	return &AppError{
		Err:     ErrConfig,
		Message: fmt.Sprintf("%s not configured", name),
	}
}

// StorageFailed reports a failed write to the durable store. Store failures
// are always fatal to the operation that hit them (contrast with Upstream).
func StorageFailed(op string) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("%s failed - storage error", op),
	}
}

// Upstream reports a failed call to an external service. Callers on the
// user-facing verification path absorb this and substitute a neutral
// fallback result instead of surfacing it.
func Upstream(service string, err error) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: fmt.Sprintf("%s unavailable: %v", service, err),
	}
}
