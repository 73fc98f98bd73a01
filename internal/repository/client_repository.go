package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riskdesk/internal/model"
)

// ClientRepository defines persistence operations for insured entities.
// By-ID lookups always carry the owning company so one tenant can never
// reach another tenant's rows.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id, companyID uuid.UUID) error
	FindByID(ctx context.Context, id, companyID uuid.UUID) (*model.Client, error)
	FindByEmail(ctx context.Context, email string) (*model.Client, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Client, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository builds a GORM-backed repository.
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ? AND company_id = ?", id, companyID).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id, companyID uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ? AND company_id = ?", id, companyID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Client, error) {
	var clients []model.Client
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
