/*
Package shared - domain layer shared error definitions

Design principles:
1. The domain layer defines sentinel errors for type-safe errors.Is() checks
2. DomainError captures the stack at creation time but formats it lazily
3. Domain errors carry no transport concepts such as HTTP status codes
4. Built on the standard library errors package only

Stack capture strategy:
- Captured when the error is constructed (inside the constructor)
- Formatted only when a log line is written (Stack() method)
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// Used with errors.Is() to classify errors; they carry no context themselves
// ============================================================================

var (
	// ErrNotFound resource not found
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict (concurrent modification, unique constraint)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput invalid input (validation failure)
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized caller identity missing or invalid
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden authenticated but not allowed
	ErrForbidden = errors.New("forbidden")
)

// ============================================================================
// Domain error struct
// Carries business context and the creation-point stack, supports
// errors.Is() and errors.As()
// ============================================================================

// DomainError structured domain error with business context and stack
type DomainError struct {
	// Err underlying sentinel error for errors.Is()
	Err error

	// Entity name of the entity the error relates to ("order", "cart", ...)
	Entity string

	// Message human-readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// stack call frames, captured at creation, formatted on demand
	stack []uintptr
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap supports errors.Is() and errors.As() through the error chain
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the stack on demand (only called when writing logs)
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack capture helpers
// ============================================================================

// CaptureStack captures the current call stack (exported for subdomain packages)
// skip: frames to skip (usually 3: Callers, CaptureStack, NewXxxError)
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack formats stack frames into strings (exported for subdomain packages)
// Runtime-internal frames are filtered; at most 10 frames are returned
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Domain error constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error
// The stack starts at the caller of this function
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker interface
// Lets the API layer extract stacks uniformly
// ============================================================================

// Stacker an error that can provide its creation-point stack
type Stacker interface {
	Stack() []string
}
