package user

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrUserNotFound user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists another account already uses the email
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidEmail email is missing or malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidCredentials email/password combination rejected.
	// Deliberately indistinguishable between unknown email and wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NewUserNotFoundError creates a user-not-found error with stack
func NewUserNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: ErrUserNotFound,
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewEmailAlreadyExistsError creates a duplicate-email error with stack
func NewEmailAlreadyExistsError(email string) error {
	return &userDomainError{
		sentinel: ErrEmailAlreadyExists,
		message:  "email already exists: " + email,
		stack:    shared.CaptureStack(3),
	}
}

// userDomainError user domain error (with stack)
type userDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string {
	return e.message
}

func (e *userDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *userDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
