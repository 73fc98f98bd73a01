package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents an insurance carrier or brokerage tenant. Users and
// insured clients belong to exactly one company.
type Company struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"uniqueIndex;size:255;not null"`
	ContactEmail string         `json:"contact_email" gorm:"size:255;not null"`
	Industry     string         `json:"industry" gorm:"size:100;index"`
	Active       bool           `json:"active" gorm:"default:true;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Users   []User   `json:"users,omitempty" gorm:"foreignKey:CompanyID"`
	Clients []Client `json:"clients,omitempty" gorm:"foreignKey:CompanyID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
