package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentLog records one scoring attempt. Every run is logged
// regardless of outcome, so failed runs stay auditable.
type AssessmentLog struct {
	ID           uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	AssessmentID uuid.UUID        `json:"assessment_id" gorm:"type:char(36);not null;index"`
	Status       AssessmentStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ErrorMessage string           `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time        `json:"created_at"`
	DeletedAt    gorm.DeletedAt   `json:"-" gorm:"index"`

	// Relations
	Assessment RiskAssessment `json:"-" gorm:"foreignKey:AssessmentID"`
}

// BeforeCreate sets UUID before creating the record.
func (l *AssessmentLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
