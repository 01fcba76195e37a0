/*
Package order - order domain error definitions

Design principles:
1. Sentinel errors support type-safe errors.Is() checks
2. Constructors capture the stack at creation for precise error location
3. All errors support the error chain back to their sentinel
4. No HTTP status codes or other non-domain concepts
*/
package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrOrderNotFound order not found
	// Usable with: errors.Is(err, ErrOrderNotFound)
	ErrOrderNotFound = errors.New("order not found")

	// ErrConcurrentModification optimistic lock conflict; callers should retry
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")

	// ErrMissingShippingInfo shipping address, recipient name or phone absent
	ErrMissingShippingInfo = errors.New("shipping address, recipient name and phone are required")

	// ErrEmptyOrderItems an order must have at least one item
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidQuantity order item quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrOrderTotalAmountNotPositive order total must be positive
	ErrOrderTotalAmountNotPositive = errors.New("order total amount must be positive")

	// ErrAlreadyShipped the order cannot be cancelled because shipping already happened
	ErrAlreadyShipped = errors.New("cannot cancel an order that has already shipped")

	// ErrAlreadyCancelled the order was cancelled before
	ErrAlreadyCancelled = errors.New("order is already cancelled")

	// ErrUnknownStatus status value outside the recognized enum
	ErrUnknownStatus = errors.New("unknown order status")

	// ErrDuplicateSubmission the merchant or payment reference was already
	// used by a persisted order. Terminal for that submission: the caller
	// must not retry with the same reference.
	ErrDuplicateSubmission = errors.New("duplicate order submission")

	// ErrPaymentVerificationFailed the gateway could not confirm the charge.
	// The order is not created; the charge may still have succeeded, so the
	// caller is told to contact support rather than retry blindly.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
)

// ============================================================================
// Constructors (carry context and stack)
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error with stack
// The returned error supports:
//   - errors.Is(err, ErrOrderNotFound)
//   - err.(shared.Stacker).Stack()
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownStatusError creates an unknown-status error
func NewUnknownStatusError(status string) error {
	return &orderDomainError{
		sentinel: ErrUnknownStatus,
		message:  "unknown order status: " + status,
		stack:    shared.CaptureStack(3),
	}
}

// NewDuplicateSubmissionError creates a duplicate-submission error.
// field names which reference collided ("merchant_uid" or "payment_uid").
func NewDuplicateSubmissionError(field, value string) error {
	return &orderDomainError{
		sentinel: ErrDuplicateSubmission,
		message:  fmt.Sprintf("order already exists for %s %q", field, value),
		stack:    shared.CaptureStack(3),
	}
}

// NewPaymentVerificationError creates a verification-failure error with the
// gateway-reported reason
func NewPaymentVerificationError(reason string) error {
	return &orderDomainError{
		sentinel: ErrPaymentVerificationFailed,
		message:  "payment verification failed: " + reason,
		stack:    shared.CaptureStack(3),
	}
}

// ============================================================================
// Order domain error struct (internal)
// ============================================================================

// orderDomainError order domain error (with stack)
type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
