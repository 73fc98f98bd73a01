package model

import "time"

// Permission is a single grantable capability, keyed "resource:action".
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"uniqueIndex;size:200;not null" json:"key"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Resource    string    `gorm:"size:100" json:"resource"`
	Action      string    `gorm:"size:100" json:"action"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
