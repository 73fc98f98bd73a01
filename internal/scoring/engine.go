package scoring

import (
	"github.com/shopspring/decimal"

	"riskdesk/internal/model"
)

// Category thresholds on the 0-100 composite scale.
const (
	MediumThreshold = 40.0
	HighThreshold   = 70.0
)

// Weights holds the component weights of the composite IRPA/CCI score.
// Weights are expected to sum to 1.0; the engine does not renormalize.
type Weights struct {
	Industry     float64
	Professional float64
	Financial    float64
	State        float64
	Education    float64
	Experience   float64
}

// DefaultWeights are the seeded actuarial defaults, used when the
// risk_factors table carries no override.
func DefaultWeights() Weights {
	return Weights{
		Industry:     0.25,
		Professional: 0.20,
		Financial:    0.25,
		State:        0.10,
		Education:    0.10,
		Experience:   0.10,
	}
}

// Inputs are the normalized attributes of one client, each on a 0-100
// scale except the raw experience and money figures which the engine
// normalizes itself.
type Inputs struct {
	IndustryRisk     float64
	ProfessionalRisk float64
	StateFactor      float64
	EducationFactor  float64
	YearsExperience  int
	AnnualRevenue    decimal.Decimal
	CoverageAmount   decimal.Decimal
}

// Result carries every sub-score next to the composite so callers can
// persist the full wide row.
type Result struct {
	IndustryRiskScore     float64
	ProfessionalRiskScore float64
	FinancialRiskScore    float64
	StateFactor           float64
	EducationFactor       float64
	ExperienceFactor      float64
	Composite             float64
	Category              model.RiskCategory
}

// Engine computes the IRPA/CCI composite: a weighted sum of bounded
// sub-scores clamped to [0,100] and bucketed by threshold.
type Engine struct {
	weights Weights
}

// NewEngine creates a scoring engine with the given weights.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Score runs the deterministic scoring formula over one set of inputs.
func (e *Engine) Score(in Inputs) Result {
	res := Result{
		IndustryRiskScore:     clamp(in.IndustryRisk),
		ProfessionalRiskScore: clamp(in.ProfessionalRisk),
		FinancialRiskScore:    financialRisk(in.AnnualRevenue, in.CoverageAmount),
		StateFactor:           clamp(in.StateFactor),
		EducationFactor:       clamp(in.EducationFactor),
		ExperienceFactor:      experienceFactor(in.YearsExperience),
	}

	composite := e.weights.Industry*res.IndustryRiskScore +
		e.weights.Professional*res.ProfessionalRiskScore +
		e.weights.Financial*res.FinancialRiskScore +
		e.weights.State*res.StateFactor +
		e.weights.Education*res.EducationFactor +
		e.weights.Experience*res.ExperienceFactor

	res.Composite = clamp(composite)
	res.Category = Categorize(res.Composite)
	return res
}

// Categorize buckets a composite score: low < 40 <= medium < 70 <= high.
func Categorize(score float64) model.RiskCategory {
	switch {
	case score >= HighThreshold:
		return model.RiskCategoryHigh
	case score >= MediumThreshold:
		return model.RiskCategoryMedium
	default:
		return model.RiskCategoryLow
	}
}

// financialRisk derives a 0-100 score from how far the requested
// coverage outruns the client's revenue. A client with no revenue and
// non-zero coverage scores the maximum.
func financialRisk(revenue, coverage decimal.Decimal) float64 {
	if coverage.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if revenue.LessThanOrEqual(decimal.Zero) {
		return 100
	}
	ratio, _ := coverage.Div(revenue).Float64()
	return clamp(ratio * 50)
}

// experienceFactor decreases with years on the job: 100 at zero years,
// minus 5 per year, floored at 10.
func experienceFactor(years int) float64 {
	if years < 0 {
		years = 0
	}
	f := 100 - 5*float64(years)
	if f < 10 {
		return 10
	}
	return f
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
