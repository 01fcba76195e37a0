/*
Package memory provides in-memory repository implementations.

Used when database.type is "memory" (local development without MySQL) and
by application-service tests. The implementations honor the same contracts
as the MySQL repositories: optimistic locking, uniqueness of order number
and payment references, and not-found sentinels.
*/
package memory

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// OrderRepository in-memory order repository
// Events are never published here; the unit of work collects them.
type OrderRepository struct {
	orders map[string]*order.Order
	mu     sync.RWMutex
}

// NewOrderRepository creates an empty in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// Save saves or updates an order, enforcing the same uniqueness rules the
// MySQL unique indexes provide.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.IsNew() {
		for _, existing := range r.orders {
			if existing.ID() == o.ID() {
				continue
			}
			if o.MerchantUID() != "" && existing.MerchantUID() == o.MerchantUID() {
				return order.NewDuplicateSubmissionError("merchant_uid", o.MerchantUID())
			}
			if o.PaymentUID() != "" && existing.PaymentUID() == o.PaymentUID() {
				return order.NewDuplicateSubmissionError("payment_uid", o.PaymentUID())
			}
			if existing.OrderNumber() == o.OrderNumber() {
				return shared.NewConflictError("order", "order number already taken")
			}
		}
	} else {
		existing, exists := r.orders[o.ID()]
		if exists && existing.Version() != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	r.orders[o.ID()] = o
	o.IncrementVersionForSave()
	o.ClearDirtyTracking()

	return nil
}

// FindByID finds an order by ID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, order.NewOrderNotFoundError(id)
	}
	return o, nil
}

// FindByUserID finds a user's orders, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, o := range r.orders {
		if o.UserID() == userID {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

// FindAll lists all orders, newest first, optionally filtered by status
func (r *OrderRepository) FindAll(ctx context.Context, status order.Status) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*order.Order
	for _, o := range r.orders {
		if status == "" || o.Status() == status {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

// ExistsByOrderNumber reports whether an order number is taken
func (r *OrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber() == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByMerchantUID reports whether a merchant reference was already used
func (r *OrderRepository) ExistsByMerchantUID(ctx context.Context, merchantUID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.MerchantUID() != "" && o.MerchantUID() == merchantUID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByPaymentUID reports whether a payment reference was already used
func (r *OrderRepository) ExistsByPaymentUID(ctx context.Context, paymentUID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.PaymentUID() != "" && o.PaymentUID() == paymentUID {
			return true, nil
		}
	}
	return false, nil
}

func sortNewestFirst(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
}

// Compile-time interface implementation check
var _ order.Repository = (*OrderRepository)(nil)
