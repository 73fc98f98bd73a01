package model

import "time"

// Risk factor categories understood by the scoring engine.
const (
	FactorCategoryWeight    = "weight"
	FactorCategoryIndustry  = "industry"
	FactorCategoryState     = "state"
	FactorCategoryEducation = "education"
	FactorCategoryJobTitle  = "job_title"
)

// RiskFactor is a reference weight row driving the scoring formula.
// Rows in the "weight" category hold the component weights of the
// composite; other categories override lookup table values.
type RiskFactor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"size:50;not null;uniqueIndex:idx_factor_category_key" json:"category"`
	Key       string    `gorm:"size:100;not null;uniqueIndex:idx_factor_category_key" json:"key"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
