package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"riskdesk/internal/errors"
	"riskdesk/internal/model"
	"riskdesk/internal/repository"
	"riskdesk/internal/scoring"
)

// AssessmentService runs risk assessments over clients. All operations
// are scoped to the caller's company.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, clientID, companyID uuid.UUID, assessedByID uint, notes string) (*model.RiskAssessment, error)
	GetAssessment(ctx context.Context, id, companyID uuid.UUID) (*model.RiskAssessment, error)
	ListAssessments(ctx context.Context, companyID uuid.UUID) ([]model.RiskAssessment, error)
	ListClientAssessments(ctx context.Context, clientID, companyID uuid.UUID) ([]model.RiskAssessment, error)
}

type assessmentService struct {
	clientRepo         repository.ClientRepository
	assessmentRepo     repository.AssessmentRepository
	recommendationRepo repository.RecommendationRepository
	logRepo            repository.AssessmentLogRepository
	referenceRepo      repository.ReferenceRepository
	// Mutex map for per-client locking
	clientMutexes sync.Map
	// Channel for async assessment logging
	logChannel chan model.AssessmentLog
}

// NewAssessmentService creates a new assessment service and starts the
// async log worker.
func NewAssessmentService(
	clientRepo repository.ClientRepository,
	assessmentRepo repository.AssessmentRepository,
	recommendationRepo repository.RecommendationRepository,
	logRepo repository.AssessmentLogRepository,
	referenceRepo repository.ReferenceRepository,
) AssessmentService {
	service := &assessmentService{
		clientRepo:         clientRepo,
		assessmentRepo:     assessmentRepo,
		recommendationRepo: recommendationRepo,
		logRepo:            logRepo,
		referenceRepo:      referenceRepo,
		logChannel:         make(chan model.AssessmentLog, 100),
	}

	go service.logWorker(context.Background())

	return service
}

// getMutex returns a mutex for a specific client ID.
func (s *assessmentService) getMutex(clientID uuid.UUID) *sync.Mutex {
	value, _ := s.clientMutexes.LoadOrStore(clientID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// logWorker batches assessment logs and flushes them periodically.
func (s *assessmentService) logWorker(ctx context.Context) {
	batch := make([]model.AssessmentLog, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-s.logChannel:
			if !ok {
				if len(batch) > 0 {
					_ = s.logRepo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= 10 {
				_ = s.logRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				_ = s.logRepo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// CreateAssessment resolves the client's reference attributes, runs the
// scoring engine, and persists the wide assessment row together with
// generated recommendations. Failed runs are persisted too, with status
// "failed", so the attempt stays visible.
func (s *assessmentService) CreateAssessment(ctx context.Context, clientID, companyID uuid.UUID, assessedByID uint, notes string) (*model.RiskAssessment, error) {
	mutex := s.getMutex(clientID)
	mutex.Lock()
	defer mutex.Unlock()

	client, err := s.clientRepo.FindByID(ctx, clientID, companyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClientNotFound
		}
		return nil, err
	}

	if !client.Active {
		return nil, errors.ErrClientInactive
	}

	assessment := &model.RiskAssessment{
		ClientID:     clientID,
		AssessedByID: assessedByID,
		Status:       model.AssessmentStatusPending,
		Notes:        notes,
	}

	inputs, err := s.resolveInputs(ctx, client)
	if err != nil {
		assessment.Status = model.AssessmentStatusFailed
		_ = s.assessmentRepo.Create(ctx, assessment)
		s.logAssessment(ctx, assessment.ID, model.AssessmentStatusFailed, err.Error())
		return assessment, err
	}

	weights, err := s.loadWeights(ctx)
	if err != nil {
		assessment.Status = model.AssessmentStatusFailed
		_ = s.assessmentRepo.Create(ctx, assessment)
		s.logAssessment(ctx, assessment.ID, model.AssessmentStatusFailed, err.Error())
		return assessment, fmt.Errorf("load weights: %w", err)
	}

	result := scoring.NewEngine(weights).Score(inputs)

	assessment.IndustryRiskScore = result.IndustryRiskScore
	assessment.ProfessionalRiskScore = result.ProfessionalRiskScore
	assessment.FinancialRiskScore = result.FinancialRiskScore
	assessment.StateFactor = result.StateFactor
	assessment.EducationFactor = result.EducationFactor
	assessment.ExperienceFactor = result.ExperienceFactor
	assessment.IRPACCIScore = result.Composite
	assessment.RiskCategory = result.Category
	assessment.Status = model.AssessmentStatusCompleted

	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		s.logAssessment(ctx, assessment.ID, model.AssessmentStatusFailed, err.Error())
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	recommendations := buildRecommendations(assessment)
	if err := s.recommendationRepo.CreateBatch(ctx, recommendations); err != nil {
		// The assessment itself is complete; surface the partial write
		// in the audit log rather than failing the whole run.
		s.logAssessment(ctx, assessment.ID, model.AssessmentStatusCompleted, fmt.Sprintf("recommendations not written: %v", err))
		return assessment, nil
	}
	assessment.Recommendations = recommendations

	s.logAssessment(ctx, assessment.ID, model.AssessmentStatusCompleted, "")

	return assessment, nil
}

// resolveInputs maps the client's denormalized attributes onto scoring
// inputs via the reference lookups.
func (s *assessmentService) resolveInputs(ctx context.Context, client *model.Client) (scoring.Inputs, error) {
	industry, err := s.referenceRepo.FindIndustry(ctx, client.Industry)
	if err != nil {
		return scoring.Inputs{}, errors.ErrUnknownLookup
	}
	state, err := s.referenceRepo.FindState(ctx, client.State)
	if err != nil {
		return scoring.Inputs{}, errors.ErrUnknownLookup
	}

	inputs := scoring.Inputs{
		IndustryRisk:    industry.BaseRisk,
		StateFactor:     state.Factor,
		YearsExperience: client.YearsExperience,
		AnnualRevenue:   client.AnnualRevenue,
		CoverageAmount:  client.CoverageAmount,
	}

	// Education and job title are optional attributes; a missing value
	// scores neutral rather than failing the run.
	if client.EducationLevel != "" {
		level, err := s.referenceRepo.FindEducationLevel(ctx, client.EducationLevel)
		if err != nil {
			return scoring.Inputs{}, errors.ErrUnknownLookup
		}
		inputs.EducationFactor = level.Factor
	} else {
		inputs.EducationFactor = 50
	}

	if client.JobTitle != "" {
		title, err := s.referenceRepo.FindJobTitle(ctx, client.JobTitle)
		if err != nil {
			return scoring.Inputs{}, errors.ErrUnknownLookup
		}
		inputs.ProfessionalRisk = title.ProfessionalRisk
	} else {
		inputs.ProfessionalRisk = 50
	}

	return inputs, nil
}

// loadWeights reads component weight overrides from the risk factor
// table, falling back to the seeded defaults per component.
func (s *assessmentService) loadWeights(ctx context.Context) (scoring.Weights, error) {
	weights := scoring.DefaultWeights()
	factors, err := s.referenceRepo.ActiveFactors(ctx, model.FactorCategoryWeight)
	if err != nil {
		return weights, err
	}
	for _, f := range factors {
		switch f.Key {
		case "industry":
			weights.Industry = f.Weight
		case "professional":
			weights.Professional = f.Weight
		case "financial":
			weights.Financial = f.Weight
		case "state":
			weights.State = f.Weight
		case "education":
			weights.Education = f.Weight
		case "experience":
			weights.Experience = f.Weight
		}
	}
	return weights, nil
}

// logAssessment logs a scoring attempt asynchronously.
func (s *assessmentService) logAssessment(ctx context.Context, assessmentID uuid.UUID, status model.AssessmentStatus, errorMessage string) {
	entry := model.AssessmentLog{
		AssessmentID: assessmentID,
		Status:       status,
		ErrorMessage: errorMessage,
	}

	select {
	case s.logChannel <- entry:
	default:
		// Channel full, log synchronously as fallback
		_ = s.logRepo.Create(ctx, &entry)
	}
}

// GetAssessment retrieves an assessment of the caller's company with
// its recommendations.
func (s *assessmentService) GetAssessment(ctx context.Context, id, companyID uuid.UUID) (*model.RiskAssessment, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, id, companyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAssessmentNotFound
		}
		return nil, err
	}
	return assessment, nil
}

// ListAssessments returns all assessments for a company, newest first.
func (s *assessmentService) ListAssessments(ctx context.Context, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	return s.assessmentRepo.ListByCompany(ctx, companyID)
}

// ListClientAssessments returns all assessments of one client of the
// caller's company.
func (s *assessmentService) ListClientAssessments(ctx context.Context, clientID, companyID uuid.UUID) ([]model.RiskAssessment, error) {
	return s.assessmentRepo.ListByClient(ctx, clientID, companyID)
}
