package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// AssessmentRepository defines persistence operations for risk assessments.
// Assessments carry no company column of their own; tenancy rides on the
// owning client, so scoped reads join through clients.
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.RiskAssessment) error
	Update(ctx context.Context, assessment *model.RiskAssessment) error
	FindByID(ctx context.Context, id, companyID uuid.UUID) (*model.RiskAssessment, error)
	ListByClient(ctx context.Context, clientID, companyID uuid.UUID) ([]model.RiskAssessment, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.RiskAssessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository builds a GORM-backed repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.RiskAssessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id, companyID uuid.UUID) (*model.RiskAssessment, error) {
	var assessment model.RiskAssessment
	if err := r.db.WithContext(ctx).
		Preload("Recommendations").
		Joins("JOIN clients ON clients.id = risk_assessments.client_id").
		Where("risk_assessments.id = ? AND clients.company_id = ?", id, companyID).
		First(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) ListByClient(ctx context.Context, clientID, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	var assessments []model.RiskAssessment
	if err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = risk_assessments.client_id").
		Where("risk_assessments.client_id = ? AND clients.company_id = ?", clientID, companyID).
		Order("risk_assessments.created_at DESC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	var assessments []model.RiskAssessment
	if err := r.db.WithContext(ctx).
		Joins("JOIN clients ON clients.id = risk_assessments.client_id").
		Where("clients.company_id = ?", companyID).
		Order("risk_assessments.created_at DESC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}
