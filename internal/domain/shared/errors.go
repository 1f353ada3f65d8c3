package shared

import "strings"

// ErrorKind classifies a domain error into one of the failure categories
// surfaced to callers
type ErrorKind string

const (
	// KindValidation marks field-level failures (bad quantity, negative price)
	KindValidation ErrorKind = "validation"
	// KindPrecondition marks a transition guard failure (wrong status, no items)
	KindPrecondition ErrorKind = "precondition"
	// KindConsistency marks a cross-entity rule violation
	KindConsistency ErrorKind = "consistency"
	// KindConcurrency marks a collision with another concurrent writer
	KindConcurrency ErrorKind = "concurrency"
)

// DomainError represents a business-rule failure. Operations that hit one
// roll back completely; the document stays in its prior state and the caller
// receives the reason.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	// Details carries per-item messages for multi-failure operations
	// (e.g. every product missing a provider during PO generation)
	Details []string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// NewValidationError creates a field-level validation error
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// NewPreconditionError creates a transition-guard error
func NewPreconditionError(code, message string) *DomainError {
	return &DomainError{Kind: KindPrecondition, Code: code, Message: message}
}

// NewConsistencyError creates a cross-entity rule error with optional
// per-item details
func NewConsistencyError(code, message string, details ...string) *DomainError {
	return &DomainError{Kind: KindConsistency, Code: code, Message: message, Details: details}
}

// NewConcurrencyError creates a concurrent-writer collision error
func NewConcurrencyError(code, message string) *DomainError {
	return &DomainError{Kind: KindConcurrency, Code: code, Message: message}
}

// IsKind reports whether err is a DomainError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	de, ok := err.(*DomainError)
	return ok && de.Kind == kind
}

// Common domain errors
var (
	ErrNotFound            = &DomainError{Kind: KindPrecondition, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrAlreadyExists       = &DomainError{Kind: KindConsistency, Code: "ALREADY_EXISTS", Message: "Resource already exists"}
	ErrConcurrencyConflict = NewConcurrencyError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrCrossTenant         = NewConsistencyError("CROSS_TENANT", "Referenced resource belongs to another enterprise")
)
