package user

import "context"

// Repository user repository interface
type Repository interface {
	// Save saves or updates a user aggregate root
	Save(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
