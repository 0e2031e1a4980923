package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	kind    error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the error category so callers can use errors.Is against the
// sentinels below.
func (e *DomainError) Unwrap() error {
	return e.kind
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation    = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrTypeMismatch  = NewDomainError("TYPE_MISMATCH", "Value has the wrong type")
	ErrNotFound      = NewDomainError("NOT_FOUND", "Not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrLockTimeout   = NewDomainError("LOCK_TIMEOUT", "Timed out waiting for a lock")
)

// NewValidationError creates a validation error with a specific code.
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, kind: ErrValidation}
}

// NewTypeMismatchError creates a type mismatch error with a specific code.
func NewTypeMismatchError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, kind: ErrTypeMismatch}
}

// NewNotFoundError creates a not-found error naming the missing resource.
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, kind: ErrNotFound}
}

// NewConflictError creates an already-exists error for a unique key collision.
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, kind: ErrAlreadyExists}
}
