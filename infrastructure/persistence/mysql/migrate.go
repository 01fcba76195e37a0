package mysql

import (
	"fmt"

	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence object,
// including the unique indexes the checkout workflow depends on.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.UserPO{},
		&po.ProductPO{},
		&po.CartPO{},
		&po.CartItemPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.OutboxEventPO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
