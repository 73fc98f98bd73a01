package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"riskdesk/internal/cache"
	"riskdesk/internal/errors"
	"riskdesk/internal/model"
	"riskdesk/internal/repository"
)

const clientCacheTTL = 5 * time.Minute

// ClientUpdate carries the mutable fields of a client. Numeric fields
// are pointers so "not submitted" and "set to zero" stay distinct.
type ClientUpdate struct {
	Name            string
	Email           string
	Industry        string
	State           string
	EducationLevel  string
	JobTitle        string
	YearsExperience *int
	AnnualRevenue   *decimal.Decimal
	CoverageAmount  *decimal.Decimal
	PolicyNumber    string
	PolicyEffective *time.Time
	PolicyExpiry    *time.Time
}

// ClientService handles insured entity CRUD. Every by-ID operation is
// scoped to the caller's company.
type ClientService interface {
	CreateClient(ctx context.Context, client *model.Client) (*model.Client, error)
	UpdateClient(ctx context.Context, id, companyID uuid.UUID, update *ClientUpdate) (*model.Client, error)
	DeleteClient(ctx context.Context, id, companyID uuid.UUID) error
	GetClient(ctx context.Context, id, companyID uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context, companyID uuid.UUID) ([]model.Client, error)
}

type clientService struct {
	repo      repository.ClientRepository
	cache     *cache.Client
	validator *PolicyValidator
}

// NewClientService creates a new client service.
func NewClientService(repo repository.ClientRepository, cache *cache.Client) ClientService {
	return &clientService{
		repo:      repo,
		cache:     cache,
		validator: NewPolicyValidator(),
	}
}

func (s *clientService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("client:%s", id.String())
}

// CreateClient persists a new insured entity. A duplicate email is a
// client error, not a conflict: the API reports it as 400.
func (s *clientService) CreateClient(ctx context.Context, client *model.Client) (*model.Client, error) {
	existing, err := s.repo.FindByEmail(ctx, client.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrClientEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check client existence: %w", err)
	}

	if err := s.validator.ValidatePolicy(client.PolicyNumber, client.PolicyEffective, client.PolicyExpiry); err != nil {
		return nil, err
	}

	client.Active = true
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// UpdateClient applies mutable fields to an existing client of the
// caller's company.
func (s *clientService) UpdateClient(ctx context.Context, id, companyID uuid.UUID, update *ClientUpdate) (*model.Client, error) {
	client, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, err
	}

	if update.Email != "" && update.Email != client.Email {
		existing, err := s.repo.FindByEmail(ctx, update.Email)
		if err == nil && existing != nil {
			return nil, errors.ErrClientEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check client existence: %w", err)
		}
		client.Email = update.Email
	}

	if err := s.validator.ValidatePolicy(update.PolicyNumber, update.PolicyEffective, update.PolicyExpiry); err != nil {
		return nil, err
	}

	if update.Name != "" {
		client.Name = update.Name
	}
	if update.Industry != "" {
		client.Industry = update.Industry
	}
	if update.State != "" {
		client.State = update.State
	}
	if update.EducationLevel != "" {
		client.EducationLevel = update.EducationLevel
	}
	if update.JobTitle != "" {
		client.JobTitle = update.JobTitle
	}
	if update.YearsExperience != nil {
		client.YearsExperience = *update.YearsExperience
	}
	if update.AnnualRevenue != nil {
		client.AnnualRevenue = *update.AnnualRevenue
	}
	if update.CoverageAmount != nil {
		client.CoverageAmount = *update.CoverageAmount
	}
	if update.PolicyNumber != "" {
		client.PolicyNumber = update.PolicyNumber
		client.PolicyEffective = update.PolicyEffective
		client.PolicyExpiry = update.PolicyExpiry
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(client.ID))
	return client, nil
}

// DeleteClient soft-deletes a client of the caller's company.
func (s *clientService) DeleteClient(ctx context.Context, id, companyID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id, companyID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrClientNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// GetClient retrieves a client by ID with caching. A cached copy is only
// served back to its owning company.
func (s *clientService) GetClient(ctx context.Context, id, companyID uuid.UUID) (*model.Client, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Client
		if err := json.Unmarshal(data, &cached); err == nil {
			if cached.CompanyID != companyID {
				return nil, errors.ErrClientNotFound
			}
			return &cached, nil
		}
	}

	client, err := s.repo.FindByID(ctx, id, companyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(client); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, clientCacheTTL)
	}
	return client, nil
}

// ListClients returns all clients of a company, newest first.
func (s *clientService) ListClients(ctx context.Context, companyID uuid.UUID) ([]model.Client, error) {
	return s.repo.ListByCompany(ctx, companyID)
}
