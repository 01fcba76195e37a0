package memory

import (
	"context"
	"sync"

	"storefront/domain/cart"
	"storefront/domain/shared"
)

// CartRepository in-memory cart repository, keyed by owner
type CartRepository struct {
	carts map[string]*cart.Cart // userID -> cart
	mu    sync.RWMutex
}

// NewCartRepository creates an empty in-memory cart repository
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]*cart.Cart),
	}
}

// Save saves or updates a cart
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.carts[c.UserID()]
	if c.IsNew() {
		if exists {
			return shared.NewConflictError("cart", "cart already exists for user")
		}
	} else if exists && existing.Version() != c.Version() {
		return shared.NewConflictError("cart", "cart was modified by another transaction, please retry")
	}

	r.carts[c.UserID()] = c
	c.IncrementVersionForSave()
	c.ClearDirtyTracking()

	return nil
}

// FindByUserID finds the user's cart
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.carts[userID]
	if !exists {
		return nil, cart.NewCartNotFoundError(userID)
	}
	return c, nil
}

// Compile-time interface implementation check
var _ cart.Repository = (*CartRepository)(nil)
