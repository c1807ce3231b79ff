package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCoordinates signals a search request without an origin point.
	ErrMissingCoordinates = errors.New("location coordinates are required")
	// ErrMissingService signals a search request without a service term.
	ErrMissingService = errors.New("service type is required")
	// ErrInvalidCoordinates signals out-of-range latitude or longitude.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrRadiusTooLarge signals a search radius above the 50-mile cap.
	ErrRadiusTooLarge = errors.New("search radius too large")

	// ErrProviderNotFound signals a missing provider record.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrDuplicateEntry signals a unique-constraint violation (email, phone).
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrInvalidProviderID signals a malformed provider identifier.
	ErrInvalidProviderID = errors.New("invalid provider id")
	// ErrTooManyIDs signals a batch lookup above the 50-id cap.
	ErrTooManyIDs = errors.New("too many provider ids")

	// ErrInvalidCredentials signals a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive signals a deactivated account.
	ErrAccountInactive = errors.New("account is deactivated")
	// ErrAccountBlocked signals a blocked account.
	ErrAccountBlocked = errors.New("account is blocked")
	// ErrEmailNotVerified signals a login before email verification.
	ErrEmailNotVerified = errors.New("email address not verified")
	// ErrEmailAlreadyVerified signals a repeated verification attempt.
	ErrEmailAlreadyVerified = errors.New("email is already verified")
	// ErrInvalidCode signals a wrong verification or reset code.
	ErrInvalidCode = errors.New("invalid code")
	// ErrCodeExpired signals an expired verification or reset code.
	ErrCodeExpired = errors.New("code has expired")

	// ErrPhotoLimit signals too many photos on a profile.
	ErrPhotoLimit = errors.New("photo limit reached")
	// ErrPhotoNotFound signals a missing photo on a profile.
	ErrPhotoNotFound = errors.New("photo not found")
)

// ValidationError wraps a field-level input failure. Matched via
// errors.Is(err, ErrValidation).
type ValidationError struct {
	Field  string
	Reason string
}

// ErrValidation is the sentinel all ValidationErrors unwrap to.
var ErrValidation = errors.New("validation failed")

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
