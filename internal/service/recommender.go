package service

import (
	"riskdesk/internal/model"
	"riskdesk/internal/scoring"
)

// Sub-score level above which a component drives a recommendation.
const elevatedSubScore = 70.0

// buildRecommendations derives underwriting recommendations from a
// completed assessment's sub-scores.
func buildRecommendations(a *model.RiskAssessment) []model.Recommendation {
	var recs []model.Recommendation

	add := func(code string, priority model.RecommendationPriority, text string) {
		recs = append(recs, model.Recommendation{
			AssessmentID: a.ID,
			Code:         code,
			Priority:     priority,
			Text:         text,
		})
	}

	switch a.RiskCategory {
	case model.RiskCategoryHigh:
		add("PREMIUM_SURCHARGE", model.PriorityHigh,
			"Composite risk is high; apply a premium surcharge and require senior underwriter sign-off.")
	case model.RiskCategoryMedium:
		add("ENHANCED_REVIEW", model.PriorityMedium,
			"Composite risk is elevated; schedule an enhanced file review before binding.")
	default:
		add("STANDARD_TERMS", model.PriorityLow,
			"Composite risk is low; standard terms apply.")
	}

	if a.FinancialRiskScore >= elevatedSubScore {
		add("COVERAGE_REVIEW", model.PriorityHigh,
			"Requested coverage is large relative to declared revenue; verify financials and consider reducing limits.")
	}
	if a.IndustryRiskScore >= elevatedSubScore {
		add("INDUSTRY_EXCLUSIONS", model.PriorityMedium,
			"Industry base risk is elevated; apply the standard industry exclusion endorsements.")
	}
	if a.ProfessionalRiskScore >= elevatedSubScore {
		add("PROFESSIONAL_RIDER", model.PriorityMedium,
			"Professional exposure is elevated; attach the professional liability rider.")
	}
	if a.ExperienceFactor >= elevatedSubScore {
		add("EXPERIENCE_CONDITION", model.PriorityMedium,
			"Limited track record; condition the policy on documented supervision or mentorship.")
	}
	if a.IRPACCIScore >= scoring.HighThreshold && a.StateFactor >= elevatedSubScore {
		add("REGIONAL_LOADING", model.PriorityLow,
			"Regional factor contributes materially to a high composite; apply the regional loading table.")
	}

	return recs
}
