package catalog

import "context"

// Repository product repository interface
type Repository interface {
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindBySKU finds a product by SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll lists products, optionally filtered by category
	// (empty category means no filter)
	FindAll(ctx context.Context, category string) ([]*Product, error)

	// Remove deletes a product from the catalog
	Remove(ctx context.Context, id string) error
}
