package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/service"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

func cleanMetrics() model.FinancialMetrics {
	return model.FinancialMetrics{
		AvgMonthlyRevenue:  decimal.NewFromInt(40_000),
		RevenueVolatility:  0.10,
		AvgMonthlyCashFlow: decimal.NewFromInt(5_000),
		DSCR:               2.00,
		DebtToRevenue:      0.20,
		AnnualRevenue:      decimal.NewFromInt(480_000),
		StabilityScore:     90,
		TotalDebt:          decimal.NewFromInt(96_000),
		RevenueTrend:       0.05,
	}
}

func TestRiskEngine_NoFlagsOnCleanMetrics(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	assessment := engine.Assess(cleanMetrics(), 0)

	assert.Empty(t, assessment.Flags)
	assert.Equal(t, valueobject.RiskLevelLow, assessment.RiskLevel)
	assert.Equal(t, []string{
		"strong debt coverage",
		"stable revenue",
		"clean payment history",
		"revenue trending upward",
	}, assessment.PositiveSignals)
}

func TestRiskEngine_IndividualRules(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	tests := []struct {
		name     string
		mutate   func(*model.FinancialMetrics)
		nsfFees  int
		code     valueobject.FlagCode
		severity valueobject.Severity
		level    valueobject.RiskLevel
	}{
		{
			name:     "low DSCR",
			mutate:   func(m *model.FinancialMetrics) { m.DSCR = 1.24 },
			code:     valueobject.FlagLowDSCR,
			severity: valueobject.SeverityHigh,
			level:    valueobject.RiskLevelHigh,
		},
		{
			name:     "excess NSF fees",
			mutate:   func(m *model.FinancialMetrics) {},
			nsfFees:  4,
			code:     valueobject.FlagCashFlowIssues,
			severity: valueobject.SeverityHigh,
			level:    valueobject.RiskLevelHigh,
		},
		{
			name: "negative cash flow",
			mutate: func(m *model.FinancialMetrics) {
				m.AvgMonthlyCashFlow = decimal.NewFromInt(-100)
			},
			code:     valueobject.FlagNegativeCashFlow,
			severity: valueobject.SeverityHigh,
			level:    valueobject.RiskLevelHigh,
		},
		{
			name:     "unstable revenue",
			mutate:   func(m *model.FinancialMetrics) { m.RevenueVolatility = 0.41 },
			code:     valueobject.FlagUnstableRevenue,
			severity: valueobject.SeverityMedium,
			level:    valueobject.RiskLevelModerate,
		},
		{
			name:     "high leverage",
			mutate:   func(m *model.FinancialMetrics) { m.DebtToRevenue = 0.51 },
			code:     valueobject.FlagHighLeverage,
			severity: valueobject.SeverityMedium,
			level:    valueobject.RiskLevelModerate,
		},
		{
			name:     "declining revenue",
			mutate:   func(m *model.FinancialMetrics) { m.RevenueTrend = -0.11 },
			code:     valueobject.FlagDecliningRevenue,
			severity: valueobject.SeverityMedium,
			level:    valueobject.RiskLevelModerate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := cleanMetrics()
			tt.mutate(&m)

			assessment := engine.Assess(m, tt.nsfFees)

			require.Len(t, assessment.Flags, 1)
			assert.Equal(t, tt.code, assessment.Flags[0].Code)
			assert.Equal(t, tt.severity, assessment.Flags[0].Severity)
			assert.Equal(t, tt.level, assessment.RiskLevel)
		})
	}
}

func TestRiskEngine_ThresholdBoundariesDoNotFire(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	m := cleanMetrics()
	m.DSCR = 1.25              // not below the minimum
	m.RevenueVolatility = 0.40 // not above the maximum
	m.DebtToRevenue = 0.50     // not above the maximum
	m.RevenueTrend = -0.10     // not below the decline threshold
	m.AvgMonthlyCashFlow = decimal.Zero

	assessment := engine.Assess(m, 3) // not above max NSF fees

	assert.Empty(t, assessment.Flags)
	assert.Equal(t, valueobject.RiskLevelLow, assessment.RiskLevel)
}

func TestRiskEngine_FlagOrderIsDeterministic(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	m := cleanMetrics()
	m.DSCR = 0.50
	m.AvgMonthlyCashFlow = decimal.NewFromInt(-1_400)
	m.DebtToRevenue = 0.83
	m.RevenueTrend = -0.2448

	assessment := engine.Assess(m, 5)

	codes := make([]valueobject.FlagCode, len(assessment.Flags))
	for i, f := range assessment.Flags {
		codes[i] = f.Code
	}
	assert.Equal(t, []valueobject.FlagCode{
		valueobject.FlagLowDSCR,
		valueobject.FlagCashFlowIssues,
		valueobject.FlagNegativeCashFlow,
		valueobject.FlagHighLeverage,
		valueobject.FlagDecliningRevenue,
	}, codes)
	assert.Equal(t, 3, assessment.HighFlagCount())
	assert.Equal(t, 2, assessment.MediumFlagCount())
}

func TestRiskEngine_MediumFlagPileUpEscalatesToHigh(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	m := cleanMetrics()
	m.RevenueVolatility = 0.45
	m.DebtToRevenue = 0.60
	m.RevenueTrend = -0.15

	assessment := engine.Assess(m, 0)

	assert.Equal(t, 3, assessment.MediumFlagCount())
	assert.Zero(t, assessment.HighFlagCount())
	assert.Equal(t, valueobject.RiskLevelHigh, assessment.RiskLevel)
}

func TestRiskEngine_EscalationDisabled(t *testing.T) {
	cfg := service.DefaultRiskConfig()
	cfg.MediumFlagEscalation = 0
	engine := service.NewRiskEngine(cfg)

	m := cleanMetrics()
	m.RevenueVolatility = 0.45
	m.DebtToRevenue = 0.60
	m.RevenueTrend = -0.15

	assessment := engine.Assess(m, 0)
	assert.Equal(t, valueobject.RiskLevelModerate, assessment.RiskLevel)
}

func TestRiskEngine_PositiveSignalsIndependentOfFlags(t *testing.T) {
	engine := service.NewRiskEngine(service.DefaultRiskConfig())

	// Declining revenue fires a flag, yet stable revenue and clean payment
	// history still register as signals.
	m := cleanMetrics()
	m.DSCR = 1.00
	m.RevenueTrend = -0.25

	assessment := engine.Assess(m, 0)

	assert.Equal(t, valueobject.RiskLevelHigh, assessment.RiskLevel)
	assert.Equal(t, []string{"stable revenue", "clean payment history"}, assessment.PositiveSignals)
}
