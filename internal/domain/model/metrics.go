package model

import "github.com/shopspring/decimal"

// FinancialMetrics is the immutable output of the metrics calculator.
// Monetary values are rounded to cents; ratio metrics carry the precision
// the downstream rule engine keys on (two decimals for DSCR and leverage,
// four for volatility and trend).
type FinancialMetrics struct {
	AvgMonthlyRevenue  decimal.Decimal `json:"avg_monthly_revenue"`
	RevenueVolatility  float64         `json:"revenue_volatility"`
	AvgMonthlyCashFlow decimal.Decimal `json:"avg_monthly_cash_flow"`
	DSCR               float64         `json:"dscr"`
	DebtToRevenue      float64         `json:"debt_to_revenue"`
	AnnualRevenue      decimal.Decimal `json:"annual_revenue"`
	NetIncome          decimal.Decimal `json:"net_income"`
	StabilityScore     int             `json:"stability_score"`
	TotalDebt          decimal.Decimal `json:"total_debt"`
	RevenueTrend       float64         `json:"revenue_trend"`
}
