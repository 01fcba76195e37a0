package po

import (
	"time"

	"storefront/domain/user"
)

// UserPO User persistence object
type UserPO struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Email        string    `gorm:"size:255;uniqueIndex:uq_users_email;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:100;not null"`
	UserType     string    `gorm:"size:20;not null"`
	Version      int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (UserPO) TableName() string {
	return "users"
}

// FromUserDomain Convert domain model to persistence object
func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Name:         u.Name(),
		UserType:     string(u.UserType()),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:           po.ID,
		Email:        po.Email,
		PasswordHash: po.PasswordHash,
		Name:         po.Name,
		UserType:     user.Type(po.UserType),
		Version:      po.Version,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	})
}
