// Package apperr defines the error kinds shared by the training pipeline and
// the HTTP layer. Every error carries one of the sentinel kinds below so the
// request boundary can map it with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation failed")
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	ErrGenerationMalformed   = errors.New("generation response malformed")
	ErrPersistence           = errors.New("persistence failure")
	ErrConflict              = errors.New("conflict")
)

// NotFoundError names the missing resource and the key it was looked up by.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound returns a *NotFoundError for resource identified by key.
func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// ValidationError is a rejected request input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation formats a ValidationError.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError is a write refused because other records still depend on
// the target.
type ConflictError struct {
	Resource string
	Key      string
	Msg      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Resource, e.Key, e.Msg)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict returns a *ConflictError for resource identified by key.
func Conflict(resource, key, msg string) error {
	return &ConflictError{Resource: resource, Key: key, Msg: msg}
}

// GenerationError is a failed exchange with the generation backend. Kind is
// either ErrGenerationUnavailable or ErrGenerationMalformed.
type GenerationError struct {
	Kind    error
	Purpose string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation: %v: %v", e.Purpose, e.Kind, e.Err)
}

func (e *GenerationError) Is(target error) bool { return target == e.Kind }

func (e *GenerationError) Unwrap() error { return e.Err }

// Unavailable wraps a transport, timeout or API failure.
func Unavailable(purpose string, err error) error {
	return &GenerationError{Kind: ErrGenerationUnavailable, Purpose: purpose, Err: err}
}

// Malformed wraps a response that could not be decoded or failed validation.
func Malformed(purpose string, err error) error {
	return &GenerationError{Kind: ErrGenerationMalformed, Purpose: purpose, Err: err}
}

// PersistenceError is a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it already carries a
// NotFound, Validation or Conflict kind, which pass through untouched.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrPersistence) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
