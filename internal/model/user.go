package model

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// User represents an authenticated platform user.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CompanyID    uuid.UUID  `json:"company_id" gorm:"type:char(36);not null;index"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Status       UserStatus `json:"status" gorm:"size:16;default:'active';index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Company Company `json:"-" gorm:"foreignKey:CompanyID"`
	Roles   []Role  `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// HasRole reports whether the user carries the role with the given slug.
// Roles must have been preloaded.
func (u *User) HasRole(slug string) bool {
	for _, r := range u.Roles {
		if r.Slug == slug {
			return true
		}
	}
	return false
}
