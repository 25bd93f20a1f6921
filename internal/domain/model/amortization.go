package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// MonthlyPayment computes the fixed monthly payment for a standard
// amortized loan.
//
// The calculation uses:
//
//	monthlyRate = annualRate / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The zero-interest case degenerates to an even split P / n. The power
// calculation runs in float64, then switches back to decimal for the
// monetary result, rounded to cents.
func MonthlyPayment(principal decimal.Decimal, annualRate float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if annualRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	monthlyRate := annualRate / 12.0
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}

// AmortizationEntry is one period of a fixed-payment amortization schedule.
type AmortizationEntry struct {
	Period           int
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
}

// AmortizationSchedule expands the loan into its per-period breakdown. The
// last period absorbs accumulated rounding so the balance reaches exactly
// zero.
func AmortizationSchedule(principal decimal.Decimal, annualRate float64, termMonths int) []AmortizationEntry {
	payment := MonthlyPayment(principal, annualRate, termMonths)
	if payment.IsZero() {
		return nil
	}

	monthlyRate := decimal.NewFromFloat(annualRate / 12.0)
	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}
	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []AmortizationEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range schedule {
		total = total.Add(e.Interest)
	}
	return total
}
