package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxReturn carries figures from the applicant's most recent business tax
// return. It is optional input; when present, annual revenue and net income
// are taken from here instead of being annualized from bank deposits.
type TaxReturn struct {
	grossRevenue  decimal.Decimal
	totalExpenses decimal.Decimal
	netIncome     decimal.Decimal
	taxYear       int
}

// NewTaxReturn creates a validated tax return record.
func NewTaxReturn(
	grossRevenue decimal.Decimal,
	totalExpenses decimal.Decimal,
	netIncome decimal.Decimal,
	taxYear int,
) (TaxReturn, error) {
	if grossRevenue.IsNegative() {
		return TaxReturn{}, fmt.Errorf("%w: gross revenue must not be negative", ErrValidation)
	}
	if totalExpenses.IsNegative() {
		return TaxReturn{}, fmt.Errorf("%w: total expenses must not be negative", ErrValidation)
	}
	if taxYear < 1900 {
		return TaxReturn{}, fmt.Errorf("%w: tax year %d is not plausible", ErrValidation, taxYear)
	}
	return TaxReturn{
		grossRevenue:  grossRevenue,
		totalExpenses: totalExpenses,
		netIncome:     netIncome,
		taxYear:       taxYear,
	}, nil
}

func (t TaxReturn) GrossRevenue() decimal.Decimal  { return t.grossRevenue }
func (t TaxReturn) TotalExpenses() decimal.Decimal { return t.totalExpenses }
func (t TaxReturn) NetIncome() decimal.Decimal     { return t.netIncome }
func (t TaxReturn) TaxYear() int                   { return t.taxYear }
