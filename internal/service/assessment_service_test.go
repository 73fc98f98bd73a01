package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"riskdesk/internal/errors"
	"riskdesk/internal/model"
)

// MockAssessmentRepository is a mock implementation of AssessmentRepository.
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) Update(ctx context.Context, assessment *model.RiskAssessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) FindByID(ctx context.Context, id, companyID uuid.UUID) (*model.RiskAssessment, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RiskAssessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByClient(ctx context.Context, clientID, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	args := m.Called(ctx, clientID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RiskAssessment), args.Error(1)
}

func (m *MockAssessmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RiskAssessment), args.Error(1)
}

// MockRecommendationRepository is a mock implementation of RecommendationRepository.
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) CreateBatch(ctx context.Context, recommendations []model.Recommendation) error {
	args := m.Called(ctx, recommendations)
	return args.Error(0)
}

func (m *MockRecommendationRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Recommendation, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recommendation), args.Error(1)
}

// MockAssessmentLogRepository is a mock implementation of AssessmentLogRepository.
type MockAssessmentLogRepository struct {
	mock.Mock
}

func (m *MockAssessmentLogRepository) Create(ctx context.Context, log *model.AssessmentLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAssessmentLogRepository) CreateBatch(ctx context.Context, logs []model.AssessmentLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

// MockReferenceRepository is a mock implementation of ReferenceRepository.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) FindIndustry(ctx context.Context, name string) (*model.Industry, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Industry), args.Error(1)
}

func (m *MockReferenceRepository) FindState(ctx context.Context, code string) (*model.State, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.State), args.Error(1)
}

func (m *MockReferenceRepository) FindEducationLevel(ctx context.Context, name string) (*model.EducationLevel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EducationLevel), args.Error(1)
}

func (m *MockReferenceRepository) FindJobTitle(ctx context.Context, name string) (*model.JobTitle, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobTitle), args.Error(1)
}

func (m *MockReferenceRepository) ActiveFactors(ctx context.Context, category string) ([]model.RiskFactor, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RiskFactor), args.Error(1)
}

func (m *MockReferenceRepository) UpsertFactor(ctx context.Context, factor *model.RiskFactor) error {
	args := m.Called(ctx, factor)
	return args.Error(0)
}

type assessmentMocks struct {
	clientRepo     *MockClientRepository
	assessmentRepo *MockAssessmentRepository
	recRepo        *MockRecommendationRepository
	logRepo        *MockAssessmentLogRepository
	refRepo        *MockReferenceRepository
}

func newAssessmentMocks() *assessmentMocks {
	m := &assessmentMocks{
		clientRepo:     new(MockClientRepository),
		assessmentRepo: new(MockAssessmentRepository),
		recRepo:        new(MockRecommendationRepository),
		logRepo:        new(MockAssessmentLogRepository),
		refRepo:        new(MockReferenceRepository),
	}
	// The async worker may or may not flush before the test ends.
	m.logRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	m.logRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Maybe()
	return m
}

func (m *assessmentMocks) service() AssessmentService {
	return NewAssessmentService(m.clientRepo, m.assessmentRepo, m.recRepo, m.logRepo, m.refRepo)
}

func recommendationCodes(recs []model.Recommendation) []string {
	codes := make([]string, 0, len(recs))
	for _, r := range recs {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestAssessmentService_CreateAssessment(t *testing.T) {
	clientID := uuid.New()
	companyID := uuid.New()

	activeClient := func() *model.Client {
		return &model.Client{
			ID:              clientID,
			CompanyID:       companyID,
			Name:            "Acme Consulting LLC",
			Email:           "ops@acme.example.com",
			Industry:        "Consulting",
			State:           "CA",
			EducationLevel:  "Bachelor",
			JobTitle:        "Consultant",
			YearsExperience: 10,
			AnnualRevenue:   decimal.NewFromInt(1_000_000),
			CoverageAmount:  decimal.NewFromInt(500_000),
			Active:          true,
		}
	}

	t.Run("low risk run with default weights", func(t *testing.T) {
		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(activeClient(), nil)
		m.refRepo.On("FindIndustry", mock.Anything, "Consulting").Return(&model.Industry{Name: "Consulting", BaseRisk: 60}, nil)
		m.refRepo.On("FindState", mock.Anything, "CA").Return(&model.State{Code: "CA", Factor: 30}, nil)
		m.refRepo.On("FindEducationLevel", mock.Anything, "Bachelor").Return(&model.EducationLevel{Name: "Bachelor", Factor: 20}, nil)
		m.refRepo.On("FindJobTitle", mock.Anything, "Consultant").Return(&model.JobTitle{Name: "Consultant", ProfessionalRisk: 40}, nil)
		m.refRepo.On("ActiveFactors", mock.Anything, model.FactorCategoryWeight).Return([]model.RiskFactor{}, nil)
		m.assessmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RiskAssessment")).Return(nil)
		m.recRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]model.Recommendation")).Return(nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "quarterly review")

		assert.NoError(t, err)
		assert.Equal(t, model.AssessmentStatusCompleted, assessment.Status)
		assert.Equal(t, uint(7), assessment.AssessedByID)
		assert.Equal(t, "quarterly review", assessment.Notes)

		// 0.25*60 + 0.20*40 + 0.25*25 + 0.10*30 + 0.10*20 + 0.10*50
		assert.InDelta(t, 39.25, assessment.IRPACCIScore, 1e-9)
		assert.Equal(t, model.RiskCategoryLow, assessment.RiskCategory)
		assert.InDelta(t, 25.0, assessment.FinancialRiskScore, 1e-9)
		assert.InDelta(t, 50.0, assessment.ExperienceFactor, 1e-9)

		assert.Equal(t, []string{"STANDARD_TERMS"}, recommendationCodes(assessment.Recommendations))

		m.clientRepo.AssertExpectations(t)
		m.assessmentRepo.AssertExpectations(t)
		m.recRepo.AssertExpectations(t)
	})

	t.Run("high risk run drives surcharge and sub-score recommendations", func(t *testing.T) {
		client := activeClient()
		client.YearsExperience = 1
		client.AnnualRevenue = decimal.NewFromInt(100_000)
		client.CoverageAmount = decimal.NewFromInt(1_000_000)

		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(client, nil)
		m.refRepo.On("FindIndustry", mock.Anything, "Consulting").Return(&model.Industry{Name: "Consulting", BaseRisk: 90}, nil)
		m.refRepo.On("FindState", mock.Anything, "CA").Return(&model.State{Code: "CA", Factor: 80}, nil)
		m.refRepo.On("FindEducationLevel", mock.Anything, "Bachelor").Return(&model.EducationLevel{Name: "Bachelor", Factor: 70}, nil)
		m.refRepo.On("FindJobTitle", mock.Anything, "Consultant").Return(&model.JobTitle{Name: "Consultant", ProfessionalRisk: 85}, nil)
		m.refRepo.On("ActiveFactors", mock.Anything, model.FactorCategoryWeight).Return([]model.RiskFactor{}, nil)
		m.assessmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RiskAssessment")).Return(nil)
		m.recRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]model.Recommendation")).Return(nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.NoError(t, err)
		// Coverage is 10x revenue, so the financial sub-score clamps at 100.
		// 0.25*90 + 0.20*85 + 0.25*100 + 0.10*80 + 0.10*70 + 0.10*95
		assert.InDelta(t, 89.0, assessment.IRPACCIScore, 1e-9)
		assert.Equal(t, model.RiskCategoryHigh, assessment.RiskCategory)

		codes := recommendationCodes(assessment.Recommendations)
		assert.ElementsMatch(t, []string{
			"PREMIUM_SURCHARGE",
			"COVERAGE_REVIEW",
			"INDUSTRY_EXCLUSIONS",
			"PROFESSIONAL_RIDER",
			"EXPERIENCE_CONDITION",
			"REGIONAL_LOADING",
		}, codes)
	})

	t.Run("weight overrides replace seeded defaults", func(t *testing.T) {
		client := activeClient()
		client.YearsExperience = 20
		client.AnnualRevenue = decimal.NewFromInt(1_000)
		client.CoverageAmount = decimal.Zero

		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(client, nil)
		m.refRepo.On("FindIndustry", mock.Anything, "Consulting").Return(&model.Industry{Name: "Consulting", BaseRisk: 100}, nil)
		m.refRepo.On("FindState", mock.Anything, "CA").Return(&model.State{Code: "CA", Factor: 0}, nil)
		m.refRepo.On("FindEducationLevel", mock.Anything, "Bachelor").Return(&model.EducationLevel{Name: "Bachelor", Factor: 0}, nil)
		m.refRepo.On("FindJobTitle", mock.Anything, "Consultant").Return(&model.JobTitle{Name: "Consultant", ProfessionalRisk: 0}, nil)
		m.refRepo.On("ActiveFactors", mock.Anything, model.FactorCategoryWeight).Return([]model.RiskFactor{
			{Category: model.FactorCategoryWeight, Key: "industry", Weight: 0.5, Active: true},
		}, nil)
		m.assessmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RiskAssessment")).Return(nil)
		m.recRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]model.Recommendation")).Return(nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.NoError(t, err)
		// Industry weight 0.5 override, experience floored at 10:
		// 0.5*100 + 0.10*10
		assert.InDelta(t, 51.0, assessment.IRPACCIScore, 1e-9)
		assert.Equal(t, model.RiskCategoryMedium, assessment.RiskCategory)
	})

	t.Run("missing optional attributes score neutral", func(t *testing.T) {
		client := activeClient()
		client.EducationLevel = ""
		client.JobTitle = ""
		client.AnnualRevenue = decimal.NewFromInt(1_000_000)
		client.CoverageAmount = decimal.NewFromInt(1_000_000)

		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(client, nil)
		m.refRepo.On("FindIndustry", mock.Anything, "Consulting").Return(&model.Industry{Name: "Consulting", BaseRisk: 40}, nil)
		m.refRepo.On("FindState", mock.Anything, "CA").Return(&model.State{Code: "CA", Factor: 40}, nil)
		m.refRepo.On("ActiveFactors", mock.Anything, model.FactorCategoryWeight).Return([]model.RiskFactor{}, nil)
		m.assessmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RiskAssessment")).Return(nil)
		m.recRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]model.Recommendation")).Return(nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.NoError(t, err)
		assert.InDelta(t, 50.0, assessment.EducationFactor, 1e-9)
		assert.InDelta(t, 50.0, assessment.ProfessionalRiskScore, 1e-9)
		m.refRepo.AssertNotCalled(t, "FindEducationLevel", mock.Anything, mock.Anything)
		m.refRepo.AssertNotCalled(t, "FindJobTitle", mock.Anything, mock.Anything)
	})

	t.Run("unknown client", func(t *testing.T) {
		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(nil, gorm.ErrRecordNotFound)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.Equal(t, errors.ErrClientNotFound, err)
		assert.Nil(t, assessment)
	})

	t.Run("inactive client", func(t *testing.T) {
		client := activeClient()
		client.Active = false

		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(client, nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.Equal(t, errors.ErrClientInactive, err)
		assert.Nil(t, assessment)
	})

	t.Run("unknown lookup persists a failed assessment", func(t *testing.T) {
		m := newAssessmentMocks()
		m.clientRepo.On("FindByID", mock.Anything, clientID, companyID).Return(activeClient(), nil)
		m.refRepo.On("FindIndustry", mock.Anything, "Consulting").Return(nil, gorm.ErrRecordNotFound)
		m.assessmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.RiskAssessment) bool {
			return a.Status == model.AssessmentStatusFailed
		})).Return(nil)

		assessment, err := m.service().CreateAssessment(context.Background(), clientID, companyID, 7, "")

		assert.Equal(t, errors.ErrUnknownLookup, err)
		assert.NotNil(t, assessment)
		assert.Equal(t, model.AssessmentStatusFailed, assessment.Status)

		m.assessmentRepo.AssertExpectations(t)
	})
}

func TestAssessmentService_GetAssessment(t *testing.T) {
	assessmentID := uuid.New()
	companyID := uuid.New()

	t.Run("found with recommendations", func(t *testing.T) {
		m := newAssessmentMocks()
		m.assessmentRepo.On("FindByID", mock.Anything, assessmentID, companyID).Return(&model.RiskAssessment{
			ID:              assessmentID,
			Status:          model.AssessmentStatusCompleted,
			Recommendations: []model.Recommendation{{Code: "STANDARD_TERMS"}},
		}, nil)

		assessment, err := m.service().GetAssessment(context.Background(), assessmentID, companyID)

		assert.NoError(t, err)
		assert.Len(t, assessment.Recommendations, 1)
	})

	t.Run("not found", func(t *testing.T) {
		m := newAssessmentMocks()
		m.assessmentRepo.On("FindByID", mock.Anything, assessmentID, companyID).Return(nil, gorm.ErrRecordNotFound)

		assessment, err := m.service().GetAssessment(context.Background(), assessmentID, companyID)

		assert.Equal(t, errors.ErrAssessmentNotFound, err)
		assert.Nil(t, assessment)
	})

	t.Run("another company's assessment is invisible", func(t *testing.T) {
		otherCompany := uuid.New()
		m := newAssessmentMocks()
		m.assessmentRepo.On("FindByID", mock.Anything, assessmentID, otherCompany).Return(nil, gorm.ErrRecordNotFound)

		assessment, err := m.service().GetAssessment(context.Background(), assessmentID, otherCompany)

		assert.Equal(t, errors.ErrAssessmentNotFound, err)
		assert.Nil(t, assessment)
		m.assessmentRepo.AssertExpectations(t)
	})
}
