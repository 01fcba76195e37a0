package memory

import (
	"context"

	"storefront/domain/shared"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// UnitOfWork in-memory unit of work. There is no real transaction; the
// business function runs directly and events pulled from registered
// aggregates are delivered to the publisher after it succeeds. Atomicity
// across repositories is weaker than the MySQL implementation, which is
// acceptable for local development and tests.
type UnitOfWork struct {
	publisher  shared.DomainEventPublisher
	aggregates []shared.AggregateRoot
}

// NewUnitOfWork creates a unit of work delivering events to publisher.
// A nil publisher drops events with a log line.
func NewUnitOfWork(publisher shared.DomainEventPublisher) *UnitOfWork {
	return &UnitOfWork{
		publisher:  publisher,
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

// Execute runs the business function and then flushes aggregate events
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	if err := fn(ctx); err != nil {
		return err
	}

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if u.publisher == nil {
				logger.Debug("Domain event dropped (no publisher)",
					zap.String("event_name", event.EventName()),
					zap.String("aggregate_id", event.GetAggregateID()),
				)
				continue
			}
			if err := u.publisher.Publish(event); err != nil {
				// Event delivery failures must not undo committed business
				// state; log and move on, matching outbox relay semantics.
				logger.Error("Failed to publish domain event",
					zap.String("event_name", event.EventName()),
					zap.String("aggregate_id", event.GetAggregateID()),
					zap.Error(err),
				)
			}
		}
	}

	return nil
}

// RegisterNew registers a newly created aggregate root for event collection
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate root for event collection
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a deleted aggregate root for event collection
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// UnitOfWorkFactory builds a fresh in-memory UnitOfWork per request
type UnitOfWorkFactory struct {
	publisher shared.DomainEventPublisher
}

// NewUnitOfWorkFactory creates a factory bound to an event publisher
func NewUnitOfWorkFactory(publisher shared.DomainEventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{publisher: publisher}
}

// New creates a UnitOfWork
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.publisher)
}

// Compile-time interface implementation checks
var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
