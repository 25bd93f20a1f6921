package service

import (
	"fmt"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RiskEngine – second pipeline stage, rule-based flag detection
// ---------------------------------------------------------------------------

// RiskConfig holds the thresholds for every risk rule and positive signal.
// It is an explicit, immutable value passed into the engine so thresholds
// are testable and overridable per call site.
type RiskConfig struct {
	// Rule thresholds.
	MinDSCR           float64 // LOW_DSCR fires below this
	MaxNSFFees        int     // CASH_FLOW_ISSUES fires above this
	MaxVolatility     float64 // UNSTABLE_REVENUE fires above this
	MaxDebtToRevenue  float64 // HIGH_LEVERAGE fires above this
	MaxRevenueDecline float64 // DECLINING_REVENUE fires below this (negative)

	// Positive signal thresholds.
	StrongDSCR       float64
	StableVolatility float64

	// MediumFlagEscalation is the MEDIUM-flag count at which the risk level
	// escalates to HIGH even without a HIGH flag. Zero disables escalation.
	MediumFlagEscalation int
}

// DefaultRiskConfig returns the industry-standard thresholds.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		MinDSCR:              1.25,
		MaxNSFFees:           3,
		MaxVolatility:        0.40,
		MaxDebtToRevenue:     0.50,
		MaxRevenueDecline:    -0.10,
		StrongDSCR:           1.75,
		StableVolatility:     0.20,
		MediumFlagEscalation: 3,
	}
}

// RiskEngine evaluates a fixed, ordered list of threshold rules against the
// metrics. Every rule is always evaluated; flag order is deterministic.
type RiskEngine struct {
	cfg RiskConfig
}

// NewRiskEngine returns an engine bound to the given configuration.
func NewRiskEngine(cfg RiskConfig) *RiskEngine {
	return &RiskEngine{cfg: cfg}
}

// Assess runs all rules, derives the overall risk level, and collects
// positive signals.
func (e *RiskEngine) Assess(m model.FinancialMetrics, nsfFees int) model.RiskAssessment {
	var flags []model.RiskFlag

	if m.DSCR < e.cfg.MinDSCR {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityHigh,
			Code:     valueobject.FlagLowDSCR,
			Message:  fmt.Sprintf("DSCR of %.2f is below %.2f minimum threshold", m.DSCR, e.cfg.MinDSCR),
		})
	}
	if nsfFees > e.cfg.MaxNSFFees {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityHigh,
			Code:     valueobject.FlagCashFlowIssues,
			Message:  fmt.Sprintf("%d NSF fees indicate recurring cash flow problems", nsfFees),
		})
	}
	if m.AvgMonthlyCashFlow.IsNegative() {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityHigh,
			Code:     valueobject.FlagNegativeCashFlow,
			Message:  fmt.Sprintf("negative average monthly cash flow of $%s", m.AvgMonthlyCashFlow.StringFixed(2)),
		})
	}
	if m.RevenueVolatility > e.cfg.MaxVolatility {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityMedium,
			Code:     valueobject.FlagUnstableRevenue,
			Message:  fmt.Sprintf("revenue volatility of %.1f%% indicates unstable cash flow", m.RevenueVolatility*100),
		})
	}
	if m.DebtToRevenue > e.cfg.MaxDebtToRevenue {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityMedium,
			Code:     valueobject.FlagHighLeverage,
			Message:  fmt.Sprintf("debt-to-revenue ratio of %.1f%% exceeds %.0f%% threshold", m.DebtToRevenue*100, e.cfg.MaxDebtToRevenue*100),
		})
	}
	if m.RevenueTrend < e.cfg.MaxRevenueDecline {
		flags = append(flags, model.RiskFlag{
			Severity: valueobject.SeverityMedium,
			Code:     valueobject.FlagDecliningRevenue,
			Message:  fmt.Sprintf("revenue declining by %.1f%%", -m.RevenueTrend*100),
		})
	}

	return model.RiskAssessment{
		RiskLevel:       e.riskLevel(flags),
		Flags:           flags,
		PositiveSignals: e.positiveSignals(m, nsfFees),
	}
}

// riskLevel derives the overall level. Any HIGH flag means HIGH risk. A
// pile-up of MEDIUM flags escalates to HIGH as well; this count threshold
// is a configured assumption rather than an independently specified rule.
func (e *RiskEngine) riskLevel(flags []model.RiskFlag) valueobject.RiskLevel {
	high, medium := 0, 0
	for _, f := range flags {
		switch f.Severity {
		case valueobject.SeverityHigh:
			high++
		case valueobject.SeverityMedium:
			medium++
		}
	}

	switch {
	case high > 0:
		return valueobject.RiskLevelHigh
	case e.cfg.MediumFlagEscalation > 0 && medium >= e.cfg.MediumFlagEscalation:
		return valueobject.RiskLevelHigh
	case medium > 0:
		return valueobject.RiskLevelModerate
	default:
		return valueobject.RiskLevelLow
	}
}

// positiveSignals are additive and independent of the flags.
func (e *RiskEngine) positiveSignals(m model.FinancialMetrics, nsfFees int) []string {
	var signals []string
	if m.DSCR >= e.cfg.StrongDSCR {
		signals = append(signals, "strong debt coverage")
	}
	if m.RevenueVolatility < e.cfg.StableVolatility {
		signals = append(signals, "stable revenue")
	}
	if nsfFees == 0 {
		signals = append(signals, "clean payment history")
	}
	if m.RevenueTrend > 0 {
		signals = append(signals, "revenue trending upward")
	}
	return signals
}
