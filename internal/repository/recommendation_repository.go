package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// RecommendationRepository defines persistence operations for
// underwriting recommendations.
type RecommendationRepository interface {
	CreateBatch(ctx context.Context, recommendations []model.Recommendation) error
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository builds a GORM-backed repository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) CreateBatch(ctx context.Context, recommendations []model.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&recommendations).Error
}

func (r *recommendationRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Recommendation, error) {
	var recommendations []model.Recommendation
	if err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("priority DESC, created_at ASC").
		Find(&recommendations).Error; err != nil {
		return nil, err
	}
	return recommendations, nil
}
