package shared

import "context"

// UnitOfWork manages the transaction boundary and collects aggregate events.
// Execute runs fn inside a single storage transaction; events pulled from
// registered aggregates are saved to the outbox table before commit so that
// business data and events are atomic.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory creates a fresh UnitOfWork per request, since a unit of
// work accumulates registered aggregates and must not be shared.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
