package memory

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/catalog"
)

// ProductRepository in-memory product repository
type ProductRepository struct {
	products map[string]*catalog.Product
	mu       sync.RWMutex
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*catalog.Product),
	}
}

// Save creates or updates a product, enforcing SKU uniqueness
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.ID() != p.ID() && existing.SKU() == p.SKU() {
			return catalog.NewSKUAlreadyExistsError(p.SKU())
		}
	}

	r.products[p.ID()] = p
	return nil
}

// FindByID finds a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.products[id]
	if !exists {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return p, nil
}

// FindBySKU finds a product by SKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SKU() == sku {
			return p, nil
		}
	}
	return nil, catalog.NewProductNotFoundError(sku)
}

// FindAll lists products, optionally filtered by category
func (r *ProductRepository) FindAll(ctx context.Context, category string) ([]*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*catalog.Product
	for _, p := range r.products {
		if category == "" || p.Category() == category {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt().After(products[j].CreatedAt())
	})
	return products, nil
}

// Remove deletes a product
func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return catalog.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

// Compile-time interface implementation check
var _ catalog.Repository = (*ProductRepository)(nil)
