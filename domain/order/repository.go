package order

import "context"

// Repository order repository interface
// The backing store must enforce unique indexes on order_number,
// merchant_uid and payment_uid (NULLs excluded); those constraints are the
// final safety net against a double-submit race that slips past the
// existence checks.
type Repository interface {
	// Save saves or updates an order aggregate root.
	// A unique-constraint violation on merchant_uid or payment_uid surfaces
	// as ErrDuplicateSubmission; on order_number as ErrConflict.
	Save(ctx context.Context, order *Order) error

	// FindByID finds an order aggregate root by ID
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByUserID finds a user's orders, newest first
	FindByUserID(ctx context.Context, userID string) ([]*Order, error)

	// FindAll lists all orders, newest first, optionally filtered by status
	// (empty status means no filter). Operator-only queries.
	FindAll(ctx context.Context, status Status) ([]*Order, error)

	// ExistsByOrderNumber reports whether an order number is taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// ExistsByMerchantUID reports whether a merchant reference was already used
	ExistsByMerchantUID(ctx context.Context, merchantUID string) (bool, error)

	// ExistsByPaymentUID reports whether a payment reference was already used
	ExistsByPaymentUID(ctx context.Context, paymentUID string) (bool, error)
}
