// Package errors maps failures onto the API error envelope.
package errors

import (
	"fmt"
	"net/http"
)

// Problem is a failure ready to be written as an error envelope.
type Problem struct {
	// Kind classifies the problem for logging and metrics.
	Kind string
	// Status is the HTTP status code for this occurrence.
	Status int
	// Message is the human-readable summary surfaced in the envelope.
	Message string
	// Fields maps an input field to what was wrong with it.
	Fields map[string]string
}

// Error implements the error interface.
func (p Problem) Error() string {
	if len(p.Fields) == 0 {
		return p.Message
	}
	return fmt.Sprintf("%s: %v", p.Message, p.Fields)
}

// WithMessage returns a copy with the given message.
func (p Problem) WithMessage(message string) Problem {
	p.Message = message
	return p
}

// WithField returns a copy with an additional field error.
func (p Problem) WithField(field, message string) Problem {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	fields[field] = message
	p.Fields = fields
	return p
}

const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindInvalidState = "invalid_state"
	KindConflict     = "conflict"
	KindBadRequest   = "bad_request"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = Problem{Kind: KindNotFound, Status: http.StatusNotFound, Message: "Not found"}

	// ErrValidation indicates the request failed validation.
	ErrValidation = Problem{Kind: KindValidation, Status: http.StatusBadRequest, Message: "Incorrect fields"}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = Problem{Kind: KindBadRequest, Status: http.StatusBadRequest, Message: "Bad request"}

	// ErrInvalidState indicates the operation is not allowed in the resource's current state.
	ErrInvalidState = Problem{Kind: KindInvalidState, Status: http.StatusBadRequest, Message: "Invalid state"}

	// ErrConflict indicates a conflict with a previous request.
	ErrConflict = Problem{Kind: KindConflict, Status: http.StatusConflict, Message: "Conflict"}

	// ErrUnauthorized is returned by the access gate. The status is 403 for client compatibility.
	ErrUnauthorized = Problem{Kind: KindUnauthorized, Status: http.StatusForbidden, Message: "Unauthorized"}

	// ErrInternal indicates an unexpected server error. The cause is never exposed.
	ErrInternal = Problem{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(fieldErrors map[string]string) Problem {
	p := ErrValidation
	for field, msg := range fieldErrors {
		p = p.WithField(field, msg)
	}
	return p
}

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) Problem {
	if identifier == nil {
		return ErrNotFound.WithMessage(fmt.Sprintf("%s not found", resourceType))
	}
	return ErrNotFound.WithMessage(fmt.Sprintf("%s '%v' not found", resourceType, identifier))
}
