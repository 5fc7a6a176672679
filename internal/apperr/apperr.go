package apperr

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed caller input. The caller can recover
// by correcting the input and retrying.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// Validation creates a ValidationError for the given field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError indicates a uniqueness violation (slug collision, duplicate
// key). It is surfaced to the caller and never auto-resolved.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// Conflict creates a ConflictError.
func Conflict(resource, key string) error {
	return &ConflictError{Resource: resource, Key: key}
}

// InvalidStateError indicates an operation that is not legal for the current
// state of the target, including operating on a missing record. The current
// state is carried so the caller can decide whether to treat it as benign.
type InvalidStateError struct {
	Resource string
	State    string
	Message  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s in state %q: %s", e.Resource, e.State, e.Message)
}

// InvalidState creates an InvalidStateError.
func InvalidState(resource, state, message string) error {
	return &InvalidStateError{Resource: resource, State: state, Message: message}
}

// StateNotFound marks records that do not exist.
const StateNotFound = "not_found"

// NotFound creates an InvalidStateError for a missing record.
func NotFound(resource string) error {
	return &InvalidStateError{Resource: resource, State: StateNotFound, Message: "not found"}
}

// DependencyError indicates an external collaborator (database, identity
// service, mail delivery) was unreachable. Retryable by the caller.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Dependency wraps an error from an external collaborator.
func Dependency(name string, err error) error {
	return &DependencyError{Dependency: name, Err: err}
}

// IsNotFound reports whether err is an InvalidStateError for a missing record.
func IsNotFound(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise) && ise.State == StateNotFound
}
