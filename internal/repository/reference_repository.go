package repository

import (
	"context"

	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// ReferenceRepository reads the lookup tables and risk factor weights
// that drive the scoring engine.
type ReferenceRepository interface {
	FindIndustry(ctx context.Context, name string) (*model.Industry, error)
	FindState(ctx context.Context, code string) (*model.State, error)
	FindEducationLevel(ctx context.Context, name string) (*model.EducationLevel, error)
	FindJobTitle(ctx context.Context, name string) (*model.JobTitle, error)
	ActiveFactors(ctx context.Context, category string) ([]model.RiskFactor, error)
	UpsertFactor(ctx context.Context, factor *model.RiskFactor) error
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository builds a GORM-backed repository.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) FindIndustry(ctx context.Context, name string) (*model.Industry, error) {
	var industry model.Industry
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&industry).Error; err != nil {
		return nil, err
	}
	return &industry, nil
}

func (r *referenceRepository) FindState(ctx context.Context, code string) (*model.State, error) {
	var state model.State
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *referenceRepository) FindEducationLevel(ctx context.Context, name string) (*model.EducationLevel, error) {
	var level model.EducationLevel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *referenceRepository) FindJobTitle(ctx context.Context, name string) (*model.JobTitle, error) {
	var title model.JobTitle
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&title).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *referenceRepository) ActiveFactors(ctx context.Context, category string) ([]model.RiskFactor, error) {
	var factors []model.RiskFactor
	if err := r.db.WithContext(ctx).
		Where("category = ? AND active = ?", category, true).
		Find(&factors).Error; err != nil {
		return nil, err
	}
	return factors, nil
}

func (r *referenceRepository) UpsertFactor(ctx context.Context, factor *model.RiskFactor) error {
	existing := model.RiskFactor{}
	err := r.db.WithContext(ctx).
		Where("category = ? AND `key` = ?", factor.Category, factor.Key).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(factor).Error
	}
	if err != nil {
		return err
	}
	existing.Weight = factor.Weight
	existing.Active = factor.Active
	return r.db.WithContext(ctx).Save(&existing).Error
}
