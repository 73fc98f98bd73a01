package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client represents an insured entity: the person or business whose risk
// is being assessed. Attribute columns are denormalized snapshots of the
// reference lookups so an assessment can be replayed against the values
// the client was scored with.
type Client struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:char(36);not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`

	Industry        string `json:"industry" gorm:"size:100;not null"`
	State           string `json:"state" gorm:"size:2;not null"`
	EducationLevel  string `json:"education_level" gorm:"size:100"`
	JobTitle        string `json:"job_title" gorm:"size:100"`
	YearsExperience int    `json:"years_experience" gorm:"default:0"`

	AnnualRevenue  decimal.Decimal `json:"annual_revenue" gorm:"type:decimal(20,2);not null;default:0"`
	CoverageAmount decimal.Decimal `json:"coverage_amount" gorm:"type:decimal(20,2);not null;default:0"`

	PolicyNumber    string     `json:"policy_number" gorm:"size:20;index"`
	PolicyEffective *time.Time `json:"policy_effective,omitempty"`
	PolicyExpiry    *time.Time `json:"policy_expiry,omitempty"`

	Active    bool           `json:"active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Company     Company          `json:"-" gorm:"foreignKey:CompanyID"`
	Assessments []RiskAssessment `json:"assessments,omitempty" gorm:"foreignKey:ClientID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
