package mysql

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// Repository is only responsible for persistence of aggregate roots, not
// event publishing. GORM associations are not used so aggregate boundaries
// stay explicit.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order (create or update)
// Orders and order items are managed manually, no GORM associations.
// When called within UoW.Execute() it uses the transaction from context,
// otherwise it opens its own transaction for atomicity.
//
// New orders rely on the unique indexes as the last line of defense against
// double submission: a violation on merchant_uid or payment_uid maps to
// ErrDuplicateSubmission, on order_number to a conflict. Updates use the
// version column for optimistic locking.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return r.translateDuplicate(err, o)
		}
	} else {
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), o.Version()).
			Updates(map[string]interface{}{
				"status":     orderPO.Status,
				"notes":      orderPO.Notes,
				"version":    o.Version() + 1,
				"updated_at": orderPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	// Delete then insert keeps item persistence simple; items are frozen
	// after creation so this only ever rewrites identical rows.
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	o.ClearDirtyTracking()

	return nil
}

func (r *OrderRepository) translateDuplicate(err error, o *order.Order) error {
	index, isDuplicate := duplicateKeyIndex(err)
	if !isDuplicate {
		return err
	}
	switch index {
	case "uq_orders_merchant_uid":
		return order.NewDuplicateSubmissionError("merchant_uid", o.MerchantUID())
	case "uq_orders_payment_uid":
		return order.NewDuplicateSubmissionError("payment_uid", o.PaymentUID())
	case "uq_orders_order_number":
		return shared.NewConflictError("order", "order number already taken")
	}
	return shared.NewConflictError("order", "duplicate order record")
}

// FindByID Find order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	itemPOs, err := r.loadItems(db, id)
	if err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindByUserID Find a user's orders, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(db, orderPOs)
}

// FindAll List all orders, newest first, optionally filtered by status
func (r *OrderRepository) FindAll(ctx context.Context, status order.Status) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	query := db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if err := query.Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.toDomainList(db, orderPOs)
}

// ExistsByOrderNumber Report whether an order number is taken
func (r *OrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	return r.exists(ctx, "order_number = ?", orderNumber)
}

// ExistsByMerchantUID Report whether a merchant reference was already used
func (r *OrderRepository) ExistsByMerchantUID(ctx context.Context, merchantUID string) (bool, error) {
	return r.exists(ctx, "merchant_uid = ?", merchantUID)
}

// ExistsByPaymentUID Report whether a payment reference was already used
func (r *OrderRepository) ExistsByPaymentUID(ctx context.Context, paymentUID string) (bool, error) {
	return r.exists(ctx, "payment_uid = ?", paymentUID)
}

func (r *OrderRepository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.OrderPO{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OrderRepository) loadItems(db *gorm.DB, orderID string) ([]po.OrderItemPO, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderID).Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return itemPOs, nil
}

func (r *OrderRepository) toDomainList(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		itemPOs, err := r.loadItems(db, orderPO.ID)
		if err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}
	return orders, nil
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
