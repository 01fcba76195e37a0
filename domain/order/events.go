package order

import (
	"time"

	"storefront/domain/shared"
)

// OrderPlacedEvent recorded when checkout persists a new order
type OrderPlacedEvent struct {
	orderID     string
	userID      string
	orderNumber string
	totalAmount shared.Money
	occurredOn  time.Time
}

func NewOrderPlacedEvent(orderID, userID, orderNumber string, totalAmount shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		orderID:     orderID,
		userID:      userID,
		orderNumber: orderNumber,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *OrderPlacedEvent) EventName() string         { return "order.placed" }
func (e *OrderPlacedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *OrderPlacedEvent) GetAggregateID() string    { return e.orderID }
func (e *OrderPlacedEvent) OrderID() string           { return e.orderID }
func (e *OrderPlacedEvent) UserID() string            { return e.userID }
func (e *OrderPlacedEvent) OrderNumber() string       { return e.orderNumber }
func (e *OrderPlacedEvent) TotalAmount() shared.Money { return e.totalAmount }

// OrderCancelledEvent recorded when the owner cancels an order
type OrderCancelledEvent struct {
	orderID    string
	fromStatus string
	occurredOn time.Time
}

func NewOrderCancelledEvent(orderID, fromStatus string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		orderID:    orderID,
		fromStatus: fromStatus,
		occurredOn: time.Now(),
	}
}

func (e *OrderCancelledEvent) EventName() string      { return "order.cancelled" }
func (e *OrderCancelledEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCancelledEvent) GetAggregateID() string { return e.orderID }
func (e *OrderCancelledEvent) OrderID() string        { return e.orderID }
func (e *OrderCancelledEvent) FromStatus() string     { return e.fromStatus }

// OrderStatusChangedEvent recorded when an operator changes the status
type OrderStatusChangedEvent struct {
	orderID    string
	fromStatus string
	toStatus   string
	occurredOn time.Time
}

func NewOrderStatusChangedEvent(orderID, fromStatus, toStatus string) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		orderID:    orderID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		occurredOn: time.Now(),
	}
}

func (e *OrderStatusChangedEvent) EventName() string      { return "order.status_changed" }
func (e *OrderStatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderStatusChangedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderStatusChangedEvent) OrderID() string        { return e.orderID }
func (e *OrderStatusChangedEvent) FromStatus() string     { return e.fromStatus }
func (e *OrderStatusChangedEvent) ToStatus() string       { return e.toStatus }
