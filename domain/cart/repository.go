package cart

import "context"

// Repository cart repository interface
// One cart per user is enforced by a unique index on the owner column.
type Repository interface {
	// Save saves or updates a cart aggregate root
	Save(ctx context.Context, cart *Cart) error

	// FindByUserID finds the user's cart.
	// Returns ErrCartNotFound when the user has never had a cart; callers
	// that want lazy creation handle that case themselves.
	FindByUserID(ctx context.Context, userID string) (*Cart, error)
}
