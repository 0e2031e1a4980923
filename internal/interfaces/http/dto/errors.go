package dto

import (
	"errors"
	"net/http"

	"github.com/bookstore/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeUnavailable is used when a dependency such as the hash lock is busy
	ErrCodeUnavailable = "ERR_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeTypeMismatch is used when a value is of the wrong kind, such as a
	// book reference that does not name a stored book
	ErrCodeTypeMismatch = "ERR_TYPE_MISMATCH"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// NotFoundMessage is the body text of every 404 response
const NotFoundMessage = "Not found"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeTypeMismatch: http.StatusUnprocessableEntity,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorKinds is checked in order; the first sentinel in the chain wins
var errorKinds = []struct {
	sentinel error
	code     string
}{
	{shared.ErrNotFound, ErrCodeNotFound},
	{shared.ErrAlreadyExists, ErrCodeAlreadyExists},
	{shared.ErrTypeMismatch, ErrCodeTypeMismatch},
	{shared.ErrValidation, ErrCodeValidation},
	{shared.ErrInvalidInput, ErrCodeBadRequest},
	{shared.ErrLockTimeout, ErrCodeUnavailable},
}

// ClassifyError returns the API error code for err by walking its chain
// for a domain error category. Unknown errors are internal.
func ClassifyError(err error) string {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.sentinel) {
			return kind.code
		}
	}
	return ErrCodeInternal
}
