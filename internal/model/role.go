package model

import "time"

// Role slugs seeded at first run.
const (
	RoleAdmin       = "admin"
	RoleUnderwriter = "underwriter"
	RoleViewer      = "viewer"
)

// Role groups permissions for assignment to users.
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `gorm:"default:false" json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}
