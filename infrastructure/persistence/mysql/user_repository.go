package mysql

import (
	"context"
	"errors"

	"storefront/domain/user"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// UserRepository MySQL/GORM implementation of user repository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository Create user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save user (create or update)
// A unique-index hit on email maps to ErrEmailAlreadyExists so two
// concurrent registrations cannot both succeed.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := r.getDB(ctx).Save(po.FromUserDomain(u)).Error; err != nil {
		if index, isDuplicate := duplicateKeyIndex(err); isDuplicate && index == "uq_users_email" {
			return user.NewEmailAlreadyExistsError(u.Email())
		}
		return err
	}
	return nil
}

// FindByID Find user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

// FindByEmail Find user by email (lowercased)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(email)
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)
