package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	FindByName(ctx context.Context, name string) (*model.Company, error)
	ListActive(ctx context.Context) ([]model.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository builds a GORM-backed repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) ListActive(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
