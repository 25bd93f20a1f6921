package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAnnualRate caps the accepted annual interest rate at 30%.
const MaxAnnualRate = 0.30

// LoanTerms is an immutable value object describing the requested loan and
// the applicant's existing obligations.
type LoanTerms struct {
	amount           decimal.Decimal
	existingDebt     decimal.Decimal
	annualRate       float64
	termMonths       int
	businessAgeYears int
}

// NewLoanTerms creates validated loan terms.
func NewLoanTerms(
	amount decimal.Decimal,
	annualRate float64,
	termMonths int,
	existingDebt decimal.Decimal,
	businessAgeYears int,
) (LoanTerms, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return LoanTerms{}, fmt.Errorf("%w: loan amount must be positive", ErrValidation)
	}
	if annualRate < 0 || annualRate > MaxAnnualRate {
		return LoanTerms{}, fmt.Errorf("%w: annual interest rate must be between 0 and %.2f", ErrValidation, MaxAnnualRate)
	}
	if termMonths < 1 {
		return LoanTerms{}, fmt.Errorf("%w: term months must be at least 1", ErrValidation)
	}
	if existingDebt.IsNegative() {
		return LoanTerms{}, fmt.Errorf("%w: existing debt must not be negative", ErrValidation)
	}
	if businessAgeYears < 0 {
		return LoanTerms{}, fmt.Errorf("%w: business age must not be negative", ErrValidation)
	}
	return LoanTerms{
		amount:           amount,
		annualRate:       annualRate,
		termMonths:       termMonths,
		existingDebt:     existingDebt,
		businessAgeYears: businessAgeYears,
	}, nil
}

// ReconstructLoanTerms rebuilds terms from persistence without validation.
func ReconstructLoanTerms(
	amount decimal.Decimal,
	annualRate float64,
	termMonths int,
	existingDebt decimal.Decimal,
	businessAgeYears int,
) LoanTerms {
	return LoanTerms{
		amount:           amount,
		annualRate:       annualRate,
		termMonths:       termMonths,
		existingDebt:     existingDebt,
		businessAgeYears: businessAgeYears,
	}
}

func (t LoanTerms) Amount() decimal.Decimal       { return t.amount }
func (t LoanTerms) AnnualRate() float64           { return t.annualRate }
func (t LoanTerms) TermMonths() int               { return t.termMonths }
func (t LoanTerms) ExistingDebt() decimal.Decimal { return t.existingDebt }
func (t LoanTerms) BusinessAgeYears() int         { return t.businessAgeYears }

// TotalDebt is the requested amount plus existing debt.
func (t LoanTerms) TotalDebt() decimal.Decimal {
	return t.amount.Add(t.existingDebt)
}
