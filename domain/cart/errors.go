package cart

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrCartNotFound cart does not exist for the user
	ErrCartNotFound = errors.New("cart not found")

	// ErrItemNotInCart product has no line item in the cart.
	// Deliberately distinct from ErrCartNotFound: the cart exists but the
	// requested line does not.
	ErrItemNotInCart = errors.New("item not in cart")

	// ErrInvalidQuantity quantity must be positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrEmptyCart the cart has no items to order
	ErrEmptyCart = errors.New("cart is empty")
)

// NewCartNotFoundError creates a cart-not-found error with stack
func NewCartNotFoundError(userID string) error {
	return &cartDomainError{
		sentinel: ErrCartNotFound,
		message:  "cart not found for user: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotInCartError creates an item-not-in-cart error with stack
func NewItemNotInCartError(productID string) error {
	return &cartDomainError{
		sentinel: ErrItemNotInCart,
		message:  "item not in cart: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// cartDomainError cart domain error (with stack)
type cartDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *cartDomainError) Error() string {
	return e.message
}

func (e *cartDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *cartDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
