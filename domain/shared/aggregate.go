package shared

// AggregateRoot is the entry point of an aggregate and maintains its
// consistency boundary:
// 1. Has a globally unique identity
// 2. Maintains the aggregate's internal invariants
// 3. All modifications go through the aggregate root
// 4. Records the domain events it produces
type AggregateRoot interface {
	// ID returns the globally unique identity of the aggregate root
	ID() string

	// Version returns the current version number, used for optimistic locking
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// Standard domain-event flow: the aggregate records events on state
	// change, the unit of work pulls them inside the transaction and saves
	// them to the outbox table.
	PullEvents() []DomainEvent
}

// Entity has a unique identity; equality is by identity, not attributes.
type Entity interface {
	ID() string
}

// ValueObject has no identity, is immutable, and compares by attribute
// values. Go cannot enforce immutability, so it is kept by convention:
// private fields, no setters.
type ValueObject interface {
	// Equals compares two value objects
	Equals(other interface{}) bool
}
