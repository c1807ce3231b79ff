package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nearserve/nearserve/internal/domain"
)

// Error codes exposed in the response envelope.
const (
	CodeMissingCoordinates   = "MISSING_COORDINATES"
	CodeMissingService       = "MISSING_SERVICE"
	CodeInvalidCoordinates   = "INVALID_COORDINATES"
	CodeRadiusTooLarge       = "RADIUS_TOO_LARGE"
	CodeSearchError          = "SEARCH_ERROR"
	CodeSuggestionsError     = "SUGGESTIONS_ERROR"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeInvalidProviderID    = "INVALID_PROVIDER_ID"
	CodeTooManyIDs           = "TOO_MANY_IDS"
	CodeProviderNotFound     = "PROVIDER_NOT_FOUND"
	CodeDuplicateEntry       = "DUPLICATE_ENTRY"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccountInactive      = "ACCOUNT_INACTIVE"
	CodeAccountBlocked       = "ACCOUNT_BLOCKED"
	CodeEmailNotVerified     = "EMAIL_NOT_VERIFIED"
	CodeEmailAlreadyVerified = "EMAIL_ALREADY_VERIFIED"
	CodeInvalidCode          = "INVALID_CODE"
	CodeCodeExpired          = "CODE_EXPIRED"
	CodePhotoLimitExceeded   = "PHOTO_LIMIT_EXCEEDED"
	CodePhotoNotFound        = "PHOTO_NOT_FOUND"
	CodeRegistrationError    = "REGISTRATION_ERROR"
	CodeUploadError          = "UPLOAD_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeBadRequest           = "BAD_REQUEST"
	CodeInternalError        = "INTERNAL_ERROR"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// decodeJSON decodes a request body into dst. Unknown fields are rejected so
// that misspelled or unsupported keys fail loudly instead of being dropped.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler maps field-level validation failures, echoing the
// field and reason from the error itself.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationError, ve.Error())
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingCoordinates,
		domain.ErrMissingService,
		domain.ErrInvalidCoordinates,
		domain.ErrRadiusTooLarge,
		domain.ErrProviderNotFound,
		domain.ErrDuplicateEntry,
		domain.ErrInvalidProviderID,
		domain.ErrTooManyIDs,
		domain.ErrInvalidCredentials,
		domain.ErrAccountInactive,
		domain.ErrAccountBlocked,
		domain.ErrEmailNotVerified,
		domain.ErrEmailAlreadyVerified,
		domain.ErrInvalidCode,
		domain.ErrCodeExpired,
		domain.ErrPhotoLimit,
		domain.ErrPhotoNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}
