package repository

import (
	"context"

	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// AssessmentLogRepository defines persistence operations for scoring
// attempt logs.
type AssessmentLogRepository interface {
	Create(ctx context.Context, log *model.AssessmentLog) error
	CreateBatch(ctx context.Context, logs []model.AssessmentLog) error
}

type assessmentLogRepository struct {
	db *gorm.DB
}

// NewAssessmentLogRepository builds a GORM-backed repository.
func NewAssessmentLogRepository(db *gorm.DB) AssessmentLogRepository {
	return &assessmentLogRepository{db: db}
}

func (r *assessmentLogRepository) Create(ctx context.Context, log *model.AssessmentLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *assessmentLogRepository) CreateBatch(ctx context.Context, logs []model.AssessmentLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}
