package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "1700000000000"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("email", "Invalid email format"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Duplicate wraps ErrDuplicate",
			err:       Duplicate("User with this email already exists"),
			target:    ErrDuplicate,
			wantMatch: true,
		},
		{
			name:      "RateLimited wraps ErrRateLimited",
			err:       RateLimited(),
			target:    ErrRateLimited,
			wantMatch: true,
		},
		{
			name:      "ConfigMissing wraps ErrConfig",
			err:       ConfigMissing("API key"),
			target:    ErrConfig,
			wantMatch: true,
		},
		{
			name:      "StorageFailed wraps ErrStorage",
			err:       StorageFailed("Registration"),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps ErrUpstream",
			err:       Upstream("Hunter.io", errors.New("connection refused")),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("user", "abc"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "Duplicate does NOT match ErrNotFound",
			err:       Duplicate("exists"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("user", "1700000000000"),
			wantMessage: "user not found with id 1700000000000",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("email", "Invalid email format"),
			wantMessage: "Invalid email format",
		},
		{
			name:        "RateLimited carries the retry hint",
			err:         RateLimited(),
			wantMessage: "Rate limit exceeded. Please try again later.",
		},
		{
			name:        "ConfigMissing names the setting",
			err:         ConfigMissing("API key"),
			wantMessage: "API key not configured",
		},
		{
			name:        "StorageFailed names the operation",
			err:         StorageFailed("Registration"),
			wantMessage: "Registration failed - storage error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("user", "abc")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
