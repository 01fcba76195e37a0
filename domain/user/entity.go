/*
Package user - user subdomain

A deliberately thin aggregate: the order workflow only needs a resolved
caller identity and an operator flag. Registration and login exist to
exercise that contract, not to be a full identity system.
*/
package user

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Type user account type
type Type string

const (
	TypeCustomer Type = "customer"
	TypeAdmin    Type = "admin"
)

// User user aggregate root
type User struct {
	id           string
	email        string
	passwordHash string
	name         string
	userType     Type
	version      int
	createdAt    time.Time
	updatedAt    time.Time

	events []shared.DomainEvent
}

// NewUser creates a new customer account.
// passwordHash must already be hashed; the domain never sees plaintext.
func NewUser(email, passwordHash, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("user", "password", "password is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("user", "name", "name is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	now := time.Now()
	u := &User{
		id:           id.String(),
		email:        email,
		passwordHash: passwordHash,
		name:         strings.TrimSpace(name),
		userType:     TypeCustomer,
		version:      0,
		createdAt:    now,
		updatedAt:    now,
		events:       make([]shared.DomainEvent, 0),
	}

	u.events = append(u.events, NewUserRegisteredEvent(u.id, u.email))

	return u, nil
}

// ReconstructionDTO user reconstruction data, repository layer use only
type ReconstructionDTO struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	UserType     Type
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RebuildFromDTO reconstructs a User from persisted data
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:           dto.ID,
		email:        dto.Email,
		passwordHash: dto.PasswordHash,
		name:         dto.Name,
		userType:     dto.UserType,
		version:      dto.Version,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
		events:       nil,
	}
}

// IsAdmin reports whether the user may call operator-only endpoints
func (u *User) IsAdmin() bool {
	return u.userType == TypeAdmin
}

// PromoteToAdmin grants operator rights
func (u *User) PromoteToAdmin() {
	u.userType = TypeAdmin
	u.updatedAt = time.Now()
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Name() string         { return u.name }
func (u *User) UserType() Type       { return u.userType }
func (u *User) Version() int         { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// PullEvents returns and clears the recorded domain events
func (u *User) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(u.events))
	copy(events, u.events)
	u.events = make([]shared.DomainEvent, 0)
	return events
}

// Compile-time check that User implements AggregateRoot
var _ shared.AggregateRoot = (*User)(nil)
