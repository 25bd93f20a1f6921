package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/smblend/credit-service/internal/domain/port"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// TemplateMemoGenerator produces a deterministic credit memo from the
// analysis results. It implements port.MemoGenerator and serves both as the
// default generator and as the fallback when the LLM adapter fails.
type TemplateMemoGenerator struct{}

// NewTemplateMemoGenerator creates a new template generator.
func NewTemplateMemoGenerator() *TemplateMemoGenerator {
	return &TemplateMemoGenerator{}
}

// Generate renders the memo. It never fails.
func (g *TemplateMemoGenerator) Generate(_ context.Context, req port.MemoRequest) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "CREDIT MEMO - %s\n\n", req.BusinessName)

	industry := req.Industry
	if industry == "" {
		industry = "Unknown"
	}
	fmt.Fprintf(&b, "BUSINESS OVERVIEW:\n")
	fmt.Fprintf(&b,
		"%s operates in the %s sector and is requesting a loan of $%s with an estimated monthly payment of $%s. "+
			"Based on financial document analysis, the business demonstrates average monthly revenue of $%s.",
		req.BusinessName, industry,
		req.LoanAmount.StringFixed(2), req.MonthlyPayment.StringFixed(2),
		req.Metrics.AvgMonthlyRevenue.StringFixed(2),
	)
	if req.TotalInterest.IsPositive() {
		fmt.Fprintf(&b, " Total interest over the life of the loan amounts to $%s.", req.TotalInterest.StringFixed(2))
	}
	b.WriteString("\n\n")

	dscrVerdict := "falls below"
	if req.Metrics.DSCR >= 1.25 {
		dscrVerdict = "meets"
	}
	riskNote := "Some concerns identified that require attention."
	if req.Assessment.RiskLevel == valueobject.RiskLevelLow {
		riskNote = "Positive indicators include strong financial metrics and stable operations."
	}
	fmt.Fprintf(&b, "FINANCIAL ANALYSIS:\n")
	fmt.Fprintf(&b,
		"The applicant's Debt Service Coverage Ratio (DSCR) of %.2f %s industry standards for approval. "+
			"Overall risk assessment indicates %s risk level. %s\n\n",
		req.Metrics.DSCR, dscrVerdict, req.Assessment.RiskLevel, riskNote,
	)

	fmt.Fprintf(&b, "RECOMMENDATION:\n")
	fmt.Fprintf(&b, "Based on the comprehensive analysis, the recommendation is to %s.",
		strings.ReplaceAll(req.Decision.Recommendation.String(), "_", " "),
	)

	if len(req.Decision.Conditions) > 0 {
		b.WriteString("\n\nCONDITIONS:\n")
		for i, c := range req.Decision.Conditions {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", c)
		}
	}
	if len(req.Decision.DeclineReasons) > 0 {
		b.WriteString("\n\nREASONS:\n")
		for i, r := range req.Decision.DeclineReasons {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- %s", r)
		}
	}

	return b.String(), nil
}
