package model

import "time"

// Reference lookup tables. Values originate from the actuarial reference
// export loaded by cmd/seed and are read-only at runtime.

// Industry maps an industry name to its base risk on a 0-100 scale.
type Industry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	BaseRisk  float64   `gorm:"not null" json:"base_risk"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State maps a two-letter state code to its regional risk factor.
type State struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;size:2;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Factor    float64   `gorm:"not null" json:"factor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EducationLevel maps an education level to its mitigating factor.
type EducationLevel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Factor    float64   `gorm:"not null" json:"factor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobTitle maps a job title to its professional risk on a 0-100 scale.
type JobTitle struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	ProfessionalRisk float64   `gorm:"not null" json:"professional_risk"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
