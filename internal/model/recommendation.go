package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecommendationPriority orders underwriting recommendations.
type RecommendationPriority string

const (
	PriorityLow    RecommendationPriority = "low"
	PriorityMedium RecommendationPriority = "medium"
	PriorityHigh   RecommendationPriority = "high"
)

// Recommendation is an underwriting suggestion derived from an
// assessment's sub-scores.
type Recommendation struct {
	ID           uuid.UUID              `json:"id" gorm:"type:char(36);primaryKey"`
	AssessmentID uuid.UUID              `json:"assessment_id" gorm:"type:char(36);not null;index"`
	Code         string                 `json:"code" gorm:"size:50;not null;index"`
	Priority     RecommendationPriority `json:"priority" gorm:"type:varchar(10);not null"`
	Text         string                 `json:"text" gorm:"type:text;not null"`
	CreatedAt    time.Time              `json:"created_at"`
	DeletedAt    gorm.DeletedAt         `json:"-" gorm:"index"`

	// Relations
	Assessment RiskAssessment `json:"-" gorm:"foreignKey:AssessmentID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Recommendation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
