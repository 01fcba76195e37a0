package po

import (
	"time"

	"storefront/domain/cart"
)

// CartPO Cart persistence object
// The unique index on user_id enforces one cart per user at the storage level.
type CartPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;uniqueIndex:uq_carts_user_id;not null"`
	Version   int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO Cart line item persistence object
type CartItemPO struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CartID    string `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	ProductID string `gorm:"size:64;not null"`
	Quantity  int    `gorm:"not null"`
}

// TableName Specify table name
func (CartItemPO) TableName() string {
	return "cart_items"
}

// FromCartDomain Convert domain model to persistence object
func FromCartDomain(c *cart.Cart) (*CartPO, []CartItemPO) {
	cartPO := &CartPO{
		ID:        c.ID(),
		UserID:    c.UserID(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}

	items := c.Items()
	itemPOs := make([]CartItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = CartItemPO{
			CartID:    c.ID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		}
	}

	return cartPO, itemPOs
}

// ToDomain Convert persistence object to domain model
func (po *CartPO) ToDomain(itemPOs []CartItemPO) *cart.Cart {
	items := make([]cart.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = cart.RebuildItem(itemPO.ProductID, itemPO.Quantity)
	}

	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        po.ID,
		UserID:    po.UserID,
		Items:     items,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
