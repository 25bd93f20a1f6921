package valueobject

import "fmt"

// Severity classifies how serious a risk flag is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
)

// FlagCode identifies a risk rule. Codes are stable and safe to key on.
type FlagCode string

const (
	FlagLowDSCR          FlagCode = "LOW_DSCR"
	FlagCashFlowIssues   FlagCode = "CASH_FLOW_ISSUES"
	FlagNegativeCashFlow FlagCode = "NEGATIVE_CASH_FLOW"
	FlagUnstableRevenue  FlagCode = "UNSTABLE_REVENUE"
	FlagHighLeverage     FlagCode = "HIGH_LEVERAGE"
	FlagDecliningRevenue FlagCode = "DECLINING_REVENUE"
)

// RiskLevel is the overall risk classification of an applicant.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
)

func (l RiskLevel) String() string { return string(l) }

// Recommendation is the terminal decision of the pipeline.
type Recommendation string

const (
	RecommendationApprove        Recommendation = "APPROVE"
	RecommendationApproveWithConditions Recommendation = "APPROVE_WITH_CONDITIONS"
	RecommendationDecline        Recommendation = "DECLINE"
)

func (r Recommendation) String() string { return string(r) }

// ParseRecommendation validates a stored recommendation string.
func ParseRecommendation(s string) (Recommendation, error) {
	switch Recommendation(s) {
	case RecommendationApprove, RecommendationApproveWithConditions, RecommendationDecline:
		return Recommendation(s), nil
	default:
		return "", fmt.Errorf("unknown recommendation %q", s)
	}
}

// ParseRiskLevel validates a stored risk level string.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLevelLow, RiskLevelModerate, RiskLevelHigh:
		return RiskLevel(s), nil
	default:
		return "", fmt.Errorf("unknown risk level %q", s)
	}
}
