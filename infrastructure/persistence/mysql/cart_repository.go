package mysql

import (
	"context"
	"errors"

	"storefront/domain/cart"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CartRepository MySQL/GORM implementation of cart repository
// Cart rows and line items are managed manually, no GORM associations.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save cart (create or update)
// Line items are rewritten delete-then-insert; the cart row carries the
// optimistic lock version. The unique index on user_id catches a race
// between two first-time saves for the same user.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, c)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, c)
	})
}

func (r *CartRepository) saveWithTx(tx *gorm.DB, c *cart.Cart) error {
	cartPO, itemPOs := po.FromCartDomain(c)

	if c.IsNew() {
		if err := tx.Create(cartPO).Error; err != nil {
			if _, isDuplicate := duplicateKeyIndex(err); isDuplicate {
				return shared.NewConflictError("cart", "cart already exists for user")
			}
			return err
		}
	} else {
		result := tx.Model(&po.CartPO{}).
			Where("id = ? AND version = ?", c.ID(), c.Version()).
			Updates(map[string]interface{}{
				"version":    c.Version() + 1,
				"updated_at": cartPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewConflictError("cart", "cart was modified by another transaction, please retry")
		}
	}

	if err := tx.Where("cart_id = ?", c.ID()).Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	c.IncrementVersionForSave()
	c.ClearDirtyTracking()

	return nil
}

// FindByUserID Find the user's cart
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	db := r.getDB(ctx)
	var cartPO po.CartPO

	result := db.First(&cartPO, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(userID)
		}
		return nil, result.Error
	}

	var itemPOs []po.CartItemPO
	if err := db.Where("cart_id = ?", cartPO.ID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return cartPO.ToDomain(itemPOs), nil
}

// Compile-time interface implementation check
var _ cart.Repository = (*CartRepository)(nil)
