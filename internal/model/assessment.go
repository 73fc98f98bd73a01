package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentStatus represents the status of a risk assessment run.
type AssessmentStatus string

const (
	AssessmentStatusPending   AssessmentStatus = "pending"
	AssessmentStatusCompleted AssessmentStatus = "completed"
	AssessmentStatusFailed    AssessmentStatus = "failed"
)

// RiskCategory is the threshold bucket derived from the composite score.
type RiskCategory string

const (
	RiskCategoryLow    RiskCategory = "low"
	RiskCategoryMedium RiskCategory = "medium"
	RiskCategoryHigh   RiskCategory = "high"
)

// RiskAssessment is one scoring run over a client. The row is wide and
// denormalized: every sub-score the engine produced is persisted next to
// the composite so reports never need to re-run the formula.
type RiskAssessment struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ClientID     uuid.UUID `json:"client_id" gorm:"type:char(36);not null;index"`
	AssessedByID uint      `json:"assessed_by_id" gorm:"not null;index"`

	IndustryRiskScore     float64 `json:"industry_risk_score" gorm:"not null;default:0"`
	ProfessionalRiskScore float64 `json:"professional_risk_score" gorm:"not null;default:0"`
	FinancialRiskScore    float64 `json:"financial_risk_score" gorm:"not null;default:0"`
	StateFactor           float64 `json:"state_factor" gorm:"not null;default:0"`
	EducationFactor       float64 `json:"education_factor" gorm:"not null;default:0"`
	ExperienceFactor      float64 `json:"experience_factor" gorm:"not null;default:0"`

	IRPACCIScore float64      `json:"irpa_cci_score" gorm:"column:irpa_cci_score;not null;default:0;index"`
	RiskCategory RiskCategory `json:"risk_category" gorm:"type:varchar(10);not null;index"`

	Status AssessmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes  string           `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Client          Client           `json:"-" gorm:"foreignKey:ClientID"`
	AssessedBy      User             `json:"-" gorm:"foreignKey:AssessedByID"`
	Recommendations []Recommendation `json:"recommendations,omitempty" gorm:"foreignKey:AssessmentID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *RiskAssessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
