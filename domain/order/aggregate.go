/*
Package order - order subdomain, the core of the checkout workflow.

The Order aggregate root is the persisted record of a purchase. Everything on
it except the fulfillment status is immutable once created:
- Line items are a frozen copy of product id, name, quantity and unit price
  captured at checkout time. Later catalog price changes never affect past
  orders.
- totalAmount = sum(item subtotals) + shippingFee, computed once at creation
  and never recomputed.
- merchantUID and paymentUID identify the external checkout attempt and the
  gateway charge. Both are optional and unique-if-present; together with the
  order number's unique index they are the storage-level safety net against
  double submission.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Order order aggregate root
// All modifications to the order and its items go through the aggregate root.
type Order struct {
	id              string
	userID          string
	orderNumber     string
	items           []Item
	shippingAddress string
	recipientName   string
	recipientPhone  string
	totalAmount     shared.Money
	shippingFee     shared.Money
	notes           string
	merchantUID     string
	paymentUID      string
	status          Status
	version         int // optimistic lock version for concurrency control
	createdAt       time.Time
	updatedAt       time.Time

	events []shared.DomainEvent
	isNew  bool
}

// Item order line item - entity within the aggregate.
// A frozen snapshot, not a live product reference.
type Item struct {
	id          string
	productID   string
	productName string
	quantity    int
	unitPrice   shared.Money
	subtotal    shared.Money
}

// Status order fulfillment status
type Status string

const (
	StatusPending         Status = "pending"
	StatusProcessing      Status = "processing"
	StatusShippingStarted Status = "shipping_started"
	StatusShipped         Status = "shipped"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
)

// ParseStatus validates a client-supplied status string
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShippingStarted,
		StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", NewUnknownStatusError(s)
}

// ItemSnapshot input for one frozen order line
type ItemSnapshot struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
}

// PostOptions inputs for creating an order
type PostOptions struct {
	UserID          string
	OrderNumber     string
	Items           []ItemSnapshot
	ShippingAddress string
	RecipientName   string
	RecipientPhone  string
	ShippingFee     shared.Money
	Notes           string
	MerchantUID     string
	PaymentUID      string
}

// NewOrder creates a new Order aggregate root.
// The only entry point for creating orders; it derives the authoritative
// total from the snapshots and the shipping fee, never from caller input.
func NewOrder(opts PostOptions) (*Order, error) {
	if opts.UserID == "" {
		return nil, shared.NewValidationError("order", "userID", "user ID is required")
	}
	if opts.OrderNumber == "" {
		return nil, shared.NewValidationError("order", "orderNumber", "order number is required")
	}
	if strings.TrimSpace(opts.ShippingAddress) == "" {
		return nil, ErrMissingShippingInfo
	}
	if strings.TrimSpace(opts.RecipientName) == "" {
		return nil, ErrMissingShippingInfo
	}
	if strings.TrimSpace(opts.RecipientPhone) == "" {
		return nil, ErrMissingShippingInfo
	}
	if len(opts.Items) == 0 {
		return nil, ErrEmptyOrderItems
	}

	items := make([]Item, len(opts.Items))
	for i, snap := range opts.Items {
		if snap.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		subtotal, err := snap.UnitPrice.Multiply(snap.Quantity)
		if err != nil {
			return nil, err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order item ID: %w", err)
		}

		items[i] = Item{
			id:          id.String(),
			productID:   snap.ProductID,
			productName: snap.ProductName,
			quantity:    snap.Quantity,
			unitPrice:   snap.UnitPrice,
			subtotal:    *subtotal,
		}
	}

	// totalAmount = sum of item subtotals + shipping fee, fixed at creation
	total := shared.NewMoney(0, shared.KRW)
	var err error
	for _, item := range items {
		total, err = total.Add(item.subtotal)
		if err != nil {
			return nil, err
		}
	}
	total, err = total.Add(opts.ShippingFee)
	if err != nil {
		return nil, err
	}
	if total.Amount() <= 0 {
		return nil, ErrOrderTotalAmountNotPositive
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              orderID.String(),
		userID:          opts.UserID,
		orderNumber:     opts.OrderNumber,
		items:           items,
		shippingAddress: strings.TrimSpace(opts.ShippingAddress),
		recipientName:   strings.TrimSpace(opts.RecipientName),
		recipientPhone:  strings.TrimSpace(opts.RecipientPhone),
		totalAmount:     *total,
		shippingFee:     opts.ShippingFee,
		notes:           strings.TrimSpace(opts.Notes),
		merchantUID:     opts.MerchantUID,
		paymentUID:      opts.PaymentUID,
		status:          StatusPending,
		version:         0,
		createdAt:       now,
		updatedAt:       now,
		events:          make([]shared.DomainEvent, 0),
		isNew:           true,
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, o.userID, o.orderNumber, o.totalAmount))

	return o, nil
}

// ReconstructionDTO order reconstruction data, repository layer use only
type ReconstructionDTO struct {
	ID              string
	UserID          string
	OrderNumber     string
	Items           []Item
	ShippingAddress string
	RecipientName   string
	RecipientPhone  string
	TotalAmount     shared.Money
	ShippingFee     shared.Money
	Notes           string
	MerchantUID     string
	PaymentUID      string
	Status          Status
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromDTO reconstructs an Order aggregate root from persisted data.
// Repository layer use only.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:              dto.ID,
		userID:          dto.UserID,
		orderNumber:     dto.OrderNumber,
		items:           dto.Items,
		shippingAddress: dto.ShippingAddress,
		recipientName:   dto.RecipientName,
		recipientPhone:  dto.RecipientPhone,
		totalAmount:     dto.TotalAmount,
		shippingFee:     dto.ShippingFee,
		notes:           dto.Notes,
		merchantUID:     dto.MerchantUID,
		paymentUID:      dto.PaymentUID,
		status:          dto.Status,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
		events:          nil,
		isNew:           false,
	}
}

// ItemReconstructionDTO order item reconstruction data
type ItemReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO reconstructs an order Item from persisted data
func RebuildItemFromDTO(dto ItemReconstructionDTO) Item {
	return Item{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}

// ============================================================================
// State machine
// ============================================================================
//
// pending -> processing -> shipping_started -> shipped -> delivered, with
// cancelled reachable from any state before shipping. Owner-initiated cancel
// enforces those rules; operator status changes only require a recognized
// value (the back office is trusted to make manual corrections).

// CancelByOwner cancels the order on behalf of its owner.
// Business rules: orders that already shipped cannot be cancelled, and a
// cancelled order cannot be cancelled again.
func (o *Order) CancelByOwner() error {
	switch o.status {
	case StatusShipped, StatusDelivered:
		return ErrAlreadyShipped
	case StatusCancelled:
		return ErrAlreadyCancelled
	}

	from := o.status
	o.status = StatusCancelled
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderCancelledEvent(o.id, string(from)))
	// Version is NOT incremented here - the repository increments it after a
	// successful save so optimistic locking compares against the DB value.

	return nil
}

// ChangeStatus sets the status to any recognized value.
// Operator-only path: no ordering is enforced beyond enum membership, so the
// back office can correct mistakes (e.g. delivered back to shipping_started).
func (o *Order) ChangeStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if o.status == status {
		return nil
	}

	from := o.status
	o.status = status
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderStatusChangedEvent(o.id, string(from), string(status)))

	return nil
}

// IsOwnedBy reports whether the order belongs to the user
func (o *Order) IsOwnedBy(userID string) bool {
	return o.userID == userID
}

// IncrementVersionForSave increments the version after successful persistence
func (o *Order) IncrementVersionForSave() {
	o.version++
	o.updatedAt = time.Now()
}

// ClearDirtyTracking marks the aggregate as persisted
func (o *Order) ClearDirtyTracking() {
	o.isNew = false
}

func (o *Order) ID() string          { return o.id }
func (o *Order) UserID() string      { return o.userID }
func (o *Order) OrderNumber() string { return o.orderNumber }

// Items returns a copy of the frozen order lines
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}
func (o *Order) ShippingAddress() string    { return o.shippingAddress }
func (o *Order) RecipientName() string      { return o.recipientName }
func (o *Order) RecipientPhone() string     { return o.recipientPhone }
func (o *Order) TotalAmount() shared.Money  { return o.totalAmount }
func (o *Order) ShippingFee() shared.Money  { return o.shippingFee }
func (o *Order) Notes() string              { return o.notes }
func (o *Order) MerchantUID() string        { return o.merchantUID }
func (o *Order) PaymentUID() string         { return o.paymentUID }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Version() int               { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) IsNew() bool                { return o.isNew }

// PullEvents returns and clears the recorded domain events
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = make([]shared.DomainEvent, 0)
	return events
}

func (item Item) ID() string              { return item.id }
func (item Item) ProductID() string       { return item.productID }
func (item Item) ProductName() string     { return item.productName }
func (item Item) Quantity() int           { return item.quantity }
func (item Item) UnitPrice() shared.Money { return item.unitPrice }
func (item Item) Subtotal() shared.Money  { return item.subtotal }

// Compile-time check that Order implements AggregateRoot
var _ shared.AggregateRoot = (*Order)(nil)
