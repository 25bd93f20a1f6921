package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/smblend/credit-service/internal/domain/model"
	"github.com/smblend/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// MetricsCalculator – first pipeline stage, derives FinancialMetrics
// ---------------------------------------------------------------------------

// StabilityWeights is the 40/30/30 split across volatility, business age,
// and NSF cleanliness used by the stability score.
type StabilityWeights struct {
	Volatility float64
	Age        float64
	NSF        float64
	// AgeCapYears is the business age at which the age component maxes out.
	AgeCapYears float64
	// NSFPenalty is deducted per NSF fee, up to NSFPenaltyCap fees.
	NSFPenalty    float64
	NSFPenaltyCap int
}

// DefaultStabilityWeights returns the production weights.
func DefaultStabilityWeights() StabilityWeights {
	return StabilityWeights{
		Volatility:    40,
		Age:           30,
		NSF:           30,
		AgeCapYears:   10,
		NSFPenalty:    10,
		NSFPenaltyCap: 3,
	}
}

// MetricsCalculator derives the fixed set of financial ratios from a raw
// financial record. It is a pure function of its inputs.
type MetricsCalculator struct {
	weights StabilityWeights
}

// NewMetricsCalculator returns a calculator with the given stability weights.
func NewMetricsCalculator(weights StabilityWeights) *MetricsCalculator {
	return &MetricsCalculator{weights: weights}
}

// Calculate derives FinancialMetrics from the loan terms, bank statement,
// and optional tax return.
//
// The DSCR denominator is the TOTAL monthly debt service: the payment on
// the requested loan plus the payment on existing debt, both amortized at
// the requested rate and term.
func (c *MetricsCalculator) Calculate(
	terms valueobject.LoanTerms,
	bank valueobject.BankStatement,
	tax *valueobject.TaxReturn,
) (model.FinancialMetrics, error) {
	deposits := bank.MonthlyDeposits()
	withdrawals := bank.MonthlyWithdrawals()
	if len(deposits) == 0 || len(deposits) != len(withdrawals) {
		return model.FinancialMetrics{}, fmt.Errorf(
			"%w: deposit and withdrawal history must be present and aligned", valueobject.ErrInsufficientData)
	}

	avgRevenue := decimal.Avg(deposits[0], deposits[1:]...)
	if avgRevenue.LessThanOrEqual(decimal.Zero) {
		return model.FinancialMetrics{}, fmt.Errorf(
			"%w: average monthly deposits are zero", valueobject.ErrInsufficientData)
	}
	avgWithdrawals := decimal.Avg(withdrawals[0], withdrawals[1:]...)
	cashFlow := avgRevenue.Sub(avgWithdrawals)

	volatility := round4(populationStdDev(deposits) / avgRevenue.InexactFloat64())

	// Annual revenue prefers tax figures; otherwise annualize deposits.
	var annualRevenue, netIncome decimal.Decimal
	if tax != nil {
		annualRevenue = tax.GrossRevenue()
		netIncome = tax.NetIncome()
	} else {
		annualRevenue = avgRevenue.Mul(decimal.NewFromInt(12))
		// Without tax data net income is an estimate from cash flow.
		netIncome = cashFlow.Mul(decimal.NewFromInt(12))
	}
	if annualRevenue.LessThanOrEqual(decimal.Zero) {
		return model.FinancialMetrics{}, fmt.Errorf(
			"%w: annual revenue resolves to zero", valueobject.ErrInsufficientData)
	}

	newLoanPayment := model.MonthlyPayment(terms.Amount(), terms.AnnualRate(), terms.TermMonths())
	existingDebtPayment := model.MonthlyPayment(terms.ExistingDebt(), terms.AnnualRate(), terms.TermMonths())
	totalDebtService := newLoanPayment.Add(existingDebtPayment)
	if totalDebtService.LessThanOrEqual(decimal.Zero) {
		return model.FinancialMetrics{}, fmt.Errorf(
			"%w: total monthly debt service is zero", valueobject.ErrInsufficientData)
	}
	dscr := round2(cashFlow.InexactFloat64() / totalDebtService.InexactFloat64())

	totalDebt := terms.TotalDebt()
	debtToRevenue := round2(totalDebt.InexactFloat64() / annualRevenue.InexactFloat64())

	trend := revenueTrend(deposits)

	stability := c.stabilityScore(volatility, terms.BusinessAgeYears(), bank.NSFFees())

	return model.FinancialMetrics{
		AvgMonthlyRevenue:  avgRevenue.Round(2),
		RevenueVolatility:  volatility,
		AvgMonthlyCashFlow: cashFlow.Round(2),
		DSCR:               dscr,
		DebtToRevenue:      debtToRevenue,
		AnnualRevenue:      annualRevenue.Round(2),
		NetIncome:          netIncome.Round(2),
		StabilityScore:     stability,
		TotalDebt:          totalDebt.Round(2),
		RevenueTrend:       trend,
	}, nil
}

// stabilityScore blends volatility, business age, and NSF cleanliness into
// a 0-100 composite. The NSF component decays but never goes negative.
func (c *MetricsCalculator) stabilityScore(volatility float64, businessAgeYears, nsfFees int) int {
	w := c.weights

	volComponent := (1 - math.Min(volatility, 1.0)) * w.Volatility
	ageComponent := math.Min(float64(businessAgeYears)/w.AgeCapYears, 1.0) * w.Age

	nsfComponent := w.NSF
	if nsfFees > 0 {
		capped := nsfFees
		if capped > w.NSFPenaltyCap {
			capped = w.NSFPenaltyCap
		}
		nsfComponent = math.Max(0, w.NSF-w.NSFPenalty*float64(capped))
	}

	total := volComponent + ageComponent + nsfComponent
	return int(math.Max(0, math.Min(100, total)))
}

// revenueTrend compares the mean of the second half of the deposit series
// against the first half. Validation guarantees an even-length series.
func revenueTrend(deposits []decimal.Decimal) float64 {
	half := len(deposits) / 2
	if half == 0 {
		return 0
	}
	first := decimal.Avg(deposits[0], deposits[1:half]...).InexactFloat64()
	second := decimal.Avg(deposits[half], deposits[half+1:]...).InexactFloat64()
	if first == 0 {
		return 0
	}
	return round4((second - first) / first)
}

// populationStdDev computes the population standard deviation of the series.
func populationStdDev(values []decimal.Decimal) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v.InexactFloat64()
	}
	mean /= n

	sumSq := 0.0
	for _, v := range values {
		d := v.InexactFloat64() - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / n)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
