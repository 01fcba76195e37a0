package catalog

import (
	"errors"

	"storefront/domain/shared"
)

var (
	// ErrProductNotFound product does not exist
	// Usable with: errors.Is(err, ErrProductNotFound)
	ErrProductNotFound = errors.New("product not found")

	// ErrSKUAlreadyExists another product already uses the SKU
	ErrSKUAlreadyExists = errors.New("sku already exists")
)

// NewProductNotFoundError creates a product-not-found error with stack
func NewProductNotFoundError(productID string) error {
	return &productDomainError{
		sentinel: ErrProductNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewSKUAlreadyExistsError creates a duplicate-SKU error with stack
func NewSKUAlreadyExistsError(sku string) error {
	return &productDomainError{
		sentinel: ErrSKUAlreadyExists,
		message:  "sku already exists: " + sku,
		stack:    shared.CaptureStack(3),
	}
}

// productDomainError catalog domain error (with stack)
type productDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *productDomainError) Error() string {
	return e.message
}

func (e *productDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *productDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
