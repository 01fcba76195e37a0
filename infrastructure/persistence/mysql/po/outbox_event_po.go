package po

import (
	"encoding/json"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object
// Implements transactional outbox pattern for reliable event publishing
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"` // e.g., "order.placed", "cart.cleared"
	Payload     string    `gorm:"type:json;not null"`      // JSON serialized event data
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent Convert domain event to outbox persistence object
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON Serialize domain event to JSON string
// Event types expose getters rather than exported fields, so the payload is
// assembled through small getter interfaces instead of reflection.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if g, ok := event.(interface{ OrderID() string }); ok {
		eventData["order_id"] = g.OrderID()
	}
	if g, ok := event.(interface{ OrderNumber() string }); ok {
		eventData["order_number"] = g.OrderNumber()
	}
	if g, ok := event.(interface{ UserID() string }); ok {
		eventData["user_id"] = g.UserID()
	}
	if g, ok := event.(interface{ TotalAmount() shared.Money }); ok {
		money := g.TotalAmount()
		eventData["total_amount"] = money.Amount()
		eventData["total_currency"] = money.Currency()
	}
	if g, ok := event.(interface{ FromStatus() string }); ok {
		eventData["from_status"] = g.FromStatus()
	}
	if g, ok := event.(interface{ ToStatus() string }); ok {
		eventData["to_status"] = g.ToStatus()
	}
	if g, ok := event.(interface{ CartID() string }); ok {
		eventData["cart_id"] = g.CartID()
	}
	if g, ok := event.(interface{ Email() string }); ok {
		eventData["email"] = g.Email()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ToEventData Extract event data from outbox PO (for debugging/testing)
func (po *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
