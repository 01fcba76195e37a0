package memory

import (
	"context"
	"sync"

	"storefront/domain/user"
)

// UserRepository in-memory user repository
type UserRepository struct {
	users map[string]*user.User
	mu    sync.RWMutex
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*user.User),
	}
}

// Save saves or updates a user, enforcing email uniqueness
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID() != u.ID() && existing.Email() == u.Email() {
			return user.NewEmailAlreadyExistsError(u.Email())
		}
	}

	r.users[u.ID()] = u
	return nil
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, user.NewUserNotFoundError(id)
	}
	return u, nil
}

// FindByEmail finds a user by email (lowercased)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.NewUserNotFoundError(email)
}

// Compile-time interface implementation check
var _ user.Repository = (*UserRepository)(nil)
