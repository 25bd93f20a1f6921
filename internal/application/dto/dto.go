package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smblend/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// BankData carries extracted bank statement figures.
type BankData struct {
	MonthlyDeposits    []decimal.Decimal `json:"monthly_deposits"`
	MonthlyWithdrawals []decimal.Decimal `json:"monthly_withdrawals"`
	NSFFees            int               `json:"nsf_fees"`
	AverageBalance     *decimal.Decimal  `json:"average_balance,omitempty"`
	MonthsCovered      int               `json:"months_covered,omitempty"`
}

// TaxData carries extracted tax return figures.
type TaxData struct {
	GrossRevenue  decimal.Decimal `json:"gross_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
	TaxYear       int             `json:"tax_year"`
}

// AnalyzeRequest carries everything needed to analyze one loan application.
type AnalyzeRequest struct {
	BusinessName       string          `json:"business_name"`
	Industry           string          `json:"industry"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	AnnualInterestRate float64         `json:"annual_interest_rate"`
	TermMonths         int             `json:"term_months"`
	BusinessAgeYears   int             `json:"business_age_years"`
	ExistingDebt       decimal.Decimal `json:"existing_debt"`
	BankData           BankData        `json:"bank_data"`
	TaxData            *TaxData        `json:"tax_data,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AnalysisResponse is the external representation of a completed analysis.
type AnalysisResponse struct {
	ID                string                 `json:"id"`
	Status            string                 `json:"status"`
	BusinessName      string                 `json:"business_name"`
	Industry          string                 `json:"industry"`
	MonthlyPayment    decimal.Decimal        `json:"monthly_payment"`
	FinancialMetrics  model.FinancialMetrics `json:"financial_metrics"`
	RiskAssessment    model.RiskAssessment   `json:"risk_assessment"`
	CreditMemo        string                 `json:"credit_memo"`
	UnderwritingScore int                    `json:"underwriting_score"`
	Recommendation    string                 `json:"recommendation"`
	Conditions        []string               `json:"conditions"`
	DeclineReasons    []string               `json:"decline_reasons"`
	CreatedAt         time.Time              `json:"created_at"`
}

// QuickScoreResponse is the pre-screening response: score and risk level
// only, no memo, nothing persisted.
type QuickScoreResponse struct {
	UnderwritingScore int    `json:"underwriting_score"`
	RiskLevel         string `json:"risk_level"`
}
