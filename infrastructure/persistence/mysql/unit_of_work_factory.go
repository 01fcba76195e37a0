package mysql

import (
	"storefront/domain/shared"
	"storefront/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory builds a fresh UnitOfWork per request. A unit of work
// accumulates registered aggregates, so instances must not be shared.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWorkFactory creates a factory bound to a connection and retry policy
func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		retryConfig: retryConfig,
	}
}

// New creates a UnitOfWork with the factory's retry policy
func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
