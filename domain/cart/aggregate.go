/*
Package cart - cart subdomain

Cart is an aggregate root holding a user's current line items. One cart per
user; it is created lazily on first access and reused across orders (checkout
clears it, never deletes it). Line items are merged by product: adding a
product already in the cart increments its quantity instead of appending a
second line.
*/
package cart

import (
	"fmt"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Cart cart aggregate root
// All modifications to line items go through the aggregate root.
type Cart struct {
	id        string
	userID    string
	items     []Item
	version   int // optimistic lock version, managed by the persistence layer
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// Item cart line item - entity within the aggregate
// Identified by productID inside the cart; no global identity.
type Item struct {
	productID string
	quantity  int
}

// NewCart creates an empty cart for a user
func NewCart(userID string) (*Cart, error) {
	if userID == "" {
		return nil, shared.NewValidationError("cart", "userID", "user ID is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cart ID: %w", err)
	}

	now := time.Now()
	return &Cart{
		id:        id.String(),
		userID:    userID,
		items:     make([]Item, 0),
		version:   0,
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
		isNew:     true,
	}, nil
}

// ReconstructionDTO cart reconstruction data, repository layer use only
type ReconstructionDTO struct {
	ID        string
	UserID    string
	Items     []Item
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs a Cart aggregate root from persisted data
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	return &Cart{
		id:        dto.ID,
		userID:    dto.UserID,
		items:     dto.Items,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
		events:    nil,
		isNew:     false,
	}
}

// RebuildItem reconstructs a cart line item from persisted data
func RebuildItem(productID string, quantity int) Item {
	return Item{productID: productID, quantity: quantity}
}

// AddItem adds a product to the cart, merging into an existing line when the
// product is already present.
func (c *Cart) AddItem(productID string, quantity int) error {
	if productID == "" {
		return shared.NewValidationError("cart", "productID", "product ID is required")
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.items {
		if c.items[i].productID == productID {
			c.items[i].quantity += quantity
			c.updatedAt = time.Now()
			return nil
		}
	}

	c.items = append(c.items, Item{productID: productID, quantity: quantity})
	c.updatedAt = time.Now()
	return nil
}

// UpdateQuantity sets the quantity of an existing line item.
// A quantity of zero or less removes the line. A product not in the cart is
// a distinct failure from a missing cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for i := range c.items {
		if c.items[i].productID == productID {
			c.items[i].quantity = quantity
			c.updatedAt = time.Now()
			return nil
		}
	}

	return NewItemNotInCartError(productID)
}

// RemoveItem removes a line item from the cart
func (c *Cart) RemoveItem(productID string) error {
	for i := range c.items {
		if c.items[i].productID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.updatedAt = time.Now()
			return nil
		}
	}

	return NewItemNotInCartError(productID)
}

// Clear empties the cart. Called after a successful checkout and from the
// explicit clear endpoint; the cart itself survives.
func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}

	c.items = c.items[:0]
	c.updatedAt = time.Now()
	c.events = append(c.events, NewCartClearedEvent(c.id, c.userID))
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// IncrementVersionForSave increments the version after successful persistence
func (c *Cart) IncrementVersionForSave() {
	c.version++
	c.updatedAt = time.Now()
}

// ClearDirtyTracking marks the aggregate as persisted
func (c *Cart) ClearDirtyTracking() {
	c.isNew = false
}

func (c *Cart) ID() string     { return c.id }
func (c *Cart) UserID() string { return c.userID }

// Items returns a copy of the line items
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}
func (c *Cart) Version() int         { return c.version }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsNew() bool          { return c.isNew }

// PullEvents returns and clears the recorded domain events
func (c *Cart) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(c.events))
	copy(events, c.events)
	c.events = c.events[:0]
	return events
}

func (item Item) ProductID() string { return item.productID }
func (item Item) Quantity() int     { return item.quantity }

// Compile-time check that Cart implements AggregateRoot
var _ shared.AggregateRoot = (*Cart)(nil)
