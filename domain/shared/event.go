package shared

import (
	"fmt"
	"sync"
	"time"
)

// DomainEvent is a fact recorded by an aggregate when something
// business-relevant happened.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// DomainEventPublisher delivers domain events to interested handlers.
// Events reach the publisher asynchronously through the outbox relay, never
// directly from repositories or application services.
type DomainEventPublisher interface {
	Publish(event DomainEvent) error
	Subscribe(eventName string, handler EventHandler) error
	Unsubscribe(eventName string, handler EventHandler) error
}

// EventHandler reacts to a published domain event.
type EventHandler interface {
	Handle(event DomainEvent) error
	Name() string
}

// ValidateEvent checks the minimal contract every domain event must satisfy.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// EventBus is an in-process DomainEventPublisher. Handlers run synchronously
// in subscription order; a failing handler does not stop the others.
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

// NewEventBus creates an empty event bus
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Publish delivers the event to all handlers subscribed to its name
func (bus *EventBus) Publish(event DomainEvent) error {
	if err := ValidateEvent(event); err != nil {
		return err
	}

	bus.mu.RLock()
	handlers := bus.handlers[event.EventName()]
	bus.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handler %s: %w", handler.Name(), err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handlers failed: %v", event.EventName(), len(errs), errs)
	}

	return nil
}

// Subscribe registers a handler for an event name
func (bus *EventBus) Subscribe(eventName string, handler EventHandler) error {
	if eventName == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	for _, h := range bus.handlers[eventName] {
		if h.Name() == handler.Name() {
			return fmt.Errorf("handler %s already subscribed to %s", handler.Name(), eventName)
		}
	}

	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	return nil
}

// Unsubscribe removes a handler from an event name
func (bus *EventBus) Unsubscribe(eventName string, handler EventHandler) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers, exists := bus.handlers[eventName]
	if !exists {
		return nil
	}

	for i, h := range handlers {
		if h.Name() == handler.Name() {
			bus.handlers[eventName] = append(handlers[:i], handlers[i+1:]...)
			return nil
		}
	}

	return nil
}

// FuncHandler adapts a plain function to the EventHandler interface.
type FuncHandler struct {
	name string
	fn   func(DomainEvent) error
}

// NewFuncHandler wraps fn as an EventHandler
func NewFuncHandler(name string, fn func(DomainEvent) error) *FuncHandler {
	if name == "" {
		name = fmt.Sprintf("func-handler-%d", time.Now().UnixNano())
	}
	return &FuncHandler{
		name: name,
		fn:   fn,
	}
}

// Handle invokes the wrapped function
func (h *FuncHandler) Handle(event DomainEvent) error {
	return h.fn(event)
}

// Name returns the handler name
func (h *FuncHandler) Name() string {
	return h.name
}

// Compile-time check that EventBus implements DomainEventPublisher
var _ DomainEventPublisher = (*EventBus)(nil)
