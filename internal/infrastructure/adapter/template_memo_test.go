package adapter_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/port"
	"github.com/smblend/credit-service/internal/domain/valueobject"
	"github.com/smblend/credit-service/internal/infrastructure/adapter"
)

func approvalMemoRequest() port.MemoRequest {
	return port.MemoRequest{
		BusinessName:   "ABC Hardware LLC",
		Industry:       "retail",
		LoanAmount:     decimal.NewFromInt(80_000),
		MonthlyPayment: decimal.RequireFromString("1622.11"),
		TotalInterest:  decimal.RequireFromString("17326.60"),
		Metrics: model.FinancialMetrics{
			AvgMonthlyRevenue: decimal.NewFromInt(44_250),
			DSCR:              3.14,
		},
		Assessment: model.RiskAssessment{RiskLevel: valueobject.RiskLevelLow},
		Decision: model.Decision{
			UnderwritingScore: 99,
			Recommendation:    valueobject.RecommendationApprove,
		},
	}
}

func TestTemplateMemoGenerator_Approval(t *testing.T) {
	gen := adapter.NewTemplateMemoGenerator()

	memo, err := gen.Generate(context.Background(), approvalMemoRequest())
	require.NoError(t, err)

	assert.Contains(t, memo, "CREDIT MEMO - ABC Hardware LLC")
	assert.Contains(t, memo, "BUSINESS OVERVIEW:")
	assert.Contains(t, memo, "retail sector")
	assert.Contains(t, memo, "loan of $80000.00")
	assert.Contains(t, memo, "monthly payment of $1622.11")
	assert.Contains(t, memo, "Total interest over the life of the loan amounts to $17326.60")
	assert.Contains(t, memo, "FINANCIAL ANALYSIS:")
	assert.Contains(t, memo, "DSCR) of 3.14 meets")
	assert.Contains(t, memo, "strong financial metrics and stable operations")
	assert.Contains(t, memo, "RECOMMENDATION:")
	assert.Contains(t, memo, "recommendation is to APPROVE.")
	assert.NotContains(t, memo, "CONDITIONS:")
	assert.NotContains(t, memo, "REASONS:")
}

func TestTemplateMemoGenerator_ConditionalApproval(t *testing.T) {
	gen := adapter.NewTemplateMemoGenerator()

	req := approvalMemoRequest()
	req.Metrics.DSCR = 1.15
	req.Assessment.RiskLevel = valueobject.RiskLevelHigh
	req.Decision = model.Decision{
		UnderwritingScore: 42,
		Recommendation:    valueobject.RecommendationApproveWithConditions,
		Conditions: []string{
			"Require personal guarantee from business owner",
			"Require quarterly financial reporting",
		},
	}

	memo, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, memo, "DSCR) of 1.15 falls below")
	assert.Contains(t, memo, "Some concerns identified")
	assert.Contains(t, memo, "recommendation is to APPROVE WITH CONDITIONS.")
	assert.Contains(t, memo, "CONDITIONS:\n- Require personal guarantee from business owner\n- Require quarterly financial reporting")
}

func TestTemplateMemoGenerator_Decline(t *testing.T) {
	gen := adapter.NewTemplateMemoGenerator()

	req := approvalMemoRequest()
	req.Metrics.DSCR = -0.17
	req.Assessment.RiskLevel = valueobject.RiskLevelHigh
	req.Decision = model.Decision{
		UnderwritingScore: 26,
		Recommendation:    valueobject.RecommendationDecline,
		DeclineReasons: []string{
			"DSCR of -0.17 is below 1.25 minimum threshold",
			"5 NSF fees indicate recurring cash flow problems",
		},
	}

	memo, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, memo, "recommendation is to DECLINE.")
	assert.Contains(t, memo, "REASONS:\n- DSCR of -0.17 is below 1.25 minimum threshold\n- 5 NSF fees indicate recurring cash flow problems")
	assert.NotContains(t, memo, "CONDITIONS:")
}

func TestTemplateMemoGenerator_UnknownIndustry(t *testing.T) {
	gen := adapter.NewTemplateMemoGenerator()

	req := approvalMemoRequest()
	req.Industry = ""

	memo, err := gen.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, memo, "Unknown sector")
}
