package service

import (
	"fmt"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Decider – fourth pipeline stage, maps score + flags to a decision
// ---------------------------------------------------------------------------

// DecisionPolicy holds the cutoffs and condition triggers for the final
// recommendation.
type DecisionPolicy struct {
	// ApproveScore is the minimum score for an unconditional approval
	// (combined with LOW risk).
	ApproveScore int
	// DeclineScore declines outright below this score.
	DeclineScore int
	// DeclineHighFlags declines when at least this many HIGH flags fired.
	DeclineHighFlags int

	// Condition triggers for conditional approvals.
	GuaranteeDSCR      float64
	ReportingStability int
	ReserveNSFFees     int
	CollateralLeverage float64

	// Extra decline-reason notes.
	SevereLeverage float64
	SevereDecline  float64
}

// DefaultDecisionPolicy returns the production policy.
func DefaultDecisionPolicy() DecisionPolicy {
	return DecisionPolicy{
		ApproveScore:       85,
		DeclineScore:       40,
		DeclineHighFlags:   2,
		GuaranteeDSCR:      1.35,
		ReportingStability: 70,
		ReserveNSFFees:     2,
		CollateralLeverage: 0.50,
		SevereLeverage:     1.0,
		SevereDecline:      -0.30,
	}
}

// Decider maps an underwriting score and risk assessment to the terminal
// APPROVE / APPROVE_WITH_CONDITIONS / DECLINE decision.
type Decider struct {
	policy DecisionPolicy
}

// NewDecider returns a decider bound to the given policy.
func NewDecider(policy DecisionPolicy) *Decider {
	return &Decider{policy: policy}
}

// Decide produces the final decision. Conditions are attached only to
// conditional approvals, decline reasons only to declines.
func (d *Decider) Decide(
	score int,
	assessment model.RiskAssessment,
	metrics model.FinancialMetrics,
	nsfFees int,
) model.Decision {
	p := d.policy

	if score >= p.ApproveScore && assessment.RiskLevel == valueobject.RiskLevelLow {
		return model.Decision{
			UnderwritingScore: score,
			Recommendation:    valueobject.RecommendationApprove,
		}
	}

	if score < p.DeclineScore || assessment.HighFlagCount() >= p.DeclineHighFlags {
		return model.Decision{
			UnderwritingScore: score,
			Recommendation:    valueobject.RecommendationDecline,
			DeclineReasons:    d.declineReasons(assessment, metrics),
		}
	}

	return model.Decision{
		UnderwritingScore: score,
		Recommendation:    valueobject.RecommendationApproveWithConditions,
		Conditions:        d.conditions(metrics, nsfFees),
	}
}

// declineReasons collects every HIGH flag's message plus explicit leverage
// and trend notes when those metrics are severe.
func (d *Decider) declineReasons(assessment model.RiskAssessment, metrics model.FinancialMetrics) []string {
	var reasons []string
	for _, f := range assessment.Flags {
		if f.Severity == valueobject.SeverityHigh {
			reasons = append(reasons, f.Message)
		}
	}
	if metrics.DebtToRevenue > d.policy.SevereLeverage {
		reasons = append(reasons, fmt.Sprintf(
			"total debt of $%s exceeds annual revenue (%.0f%% debt-to-revenue)",
			metrics.TotalDebt.StringFixed(2), metrics.DebtToRevenue*100))
	}
	if metrics.RevenueTrend < d.policy.SevereDecline {
		reasons = append(reasons, fmt.Sprintf(
			"revenue contracted %.1f%% over the statement period", -metrics.RevenueTrend*100))
	}
	return reasons
}

// conditions assembles the condition list for a conditional approval. The
// list is never empty: with no specific trigger, standard terms with
// enhanced monitoring apply.
func (d *Decider) conditions(metrics model.FinancialMetrics, nsfFees int) []string {
	p := d.policy
	var conditions []string

	if metrics.DSCR < p.GuaranteeDSCR {
		conditions = append(conditions, "Require personal guarantee from business owner")
	}
	if metrics.StabilityScore < p.ReportingStability {
		conditions = append(conditions, "Require quarterly financial reporting")
	}
	if nsfFees > p.ReserveNSFFees {
		conditions = append(conditions, "Establish cash reserve requirement of 3 months expenses")
	}
	if metrics.DebtToRevenue > p.CollateralLeverage {
		conditions = append(conditions, "Provide additional collateral or reduce requested loan amount")
	}
	if len(conditions) == 0 {
		conditions = append(conditions, "Standard terms with enhanced monitoring")
	}
	return conditions
}
