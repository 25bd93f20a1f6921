package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BankStatement is an immutable value object carrying twelve months (or
// fewer, always an even number) of deposit and withdrawal history extracted
// from bank statements. Deposit and withdrawal sequences are chronological
// and must have equal, non-zero length.
type BankStatement struct {
	monthlyDeposits    []decimal.Decimal
	monthlyWithdrawals []decimal.Decimal
	nsfFees            int
	averageBalance     decimal.Decimal
	hasAverageBalance  bool
	monthsCovered      int
}

// NewBankStatement creates a validated bank statement. An even number of
// months is required so the revenue trend can split the series into exact
// halves; odd-length histories are rejected rather than silently truncated.
func NewBankStatement(
	monthlyDeposits []decimal.Decimal,
	monthlyWithdrawals []decimal.Decimal,
	nsfFees int,
	monthsCovered int,
) (BankStatement, error) {
	if len(monthlyDeposits) == 0 {
		return BankStatement{}, fmt.Errorf("%w: monthly deposits are required", ErrValidation)
	}
	if len(monthlyDeposits) != len(monthlyWithdrawals) {
		return BankStatement{}, fmt.Errorf("%w: deposits and withdrawals must cover the same months (%d vs %d)",
			ErrValidation, len(monthlyDeposits), len(monthlyWithdrawals))
	}
	if len(monthlyDeposits)%2 != 0 {
		return BankStatement{}, fmt.Errorf("%w: an even number of months is required, got %d",
			ErrValidation, len(monthlyDeposits))
	}
	if len(monthlyDeposits) > 12 {
		return BankStatement{}, fmt.Errorf("%w: at most 12 months of history are accepted, got %d",
			ErrValidation, len(monthlyDeposits))
	}
	for i, d := range monthlyDeposits {
		if d.IsNegative() {
			return BankStatement{}, fmt.Errorf("%w: deposit for month %d must not be negative", ErrValidation, i+1)
		}
	}
	for i, w := range monthlyWithdrawals {
		if w.IsNegative() {
			return BankStatement{}, fmt.Errorf("%w: withdrawal for month %d must not be negative", ErrValidation, i+1)
		}
	}
	if nsfFees < 0 {
		return BankStatement{}, fmt.Errorf("%w: NSF fee count must not be negative", ErrValidation)
	}
	if monthsCovered == 0 {
		monthsCovered = len(monthlyDeposits)
	}
	if monthsCovered < 1 || monthsCovered > 12 {
		return BankStatement{}, fmt.Errorf("%w: months covered must be between 1 and 12", ErrValidation)
	}

	return BankStatement{
		monthlyDeposits:    copyAmounts(monthlyDeposits),
		monthlyWithdrawals: copyAmounts(monthlyWithdrawals),
		nsfFees:            nsfFees,
		monthsCovered:      monthsCovered,
	}, nil
}

// WithAverageBalance returns a copy carrying the optional average balance.
func (s BankStatement) WithAverageBalance(balance decimal.Decimal) BankStatement {
	next := s
	next.averageBalance = balance
	next.hasAverageBalance = true
	return next
}

// MonthlyDeposits returns a copy of the chronological deposit sequence.
func (s BankStatement) MonthlyDeposits() []decimal.Decimal {
	return copyAmounts(s.monthlyDeposits)
}

// MonthlyWithdrawals returns a copy of the chronological withdrawal sequence.
func (s BankStatement) MonthlyWithdrawals() []decimal.Decimal {
	return copyAmounts(s.monthlyWithdrawals)
}

func (s BankStatement) NSFFees() int       { return s.nsfFees }
func (s BankStatement) MonthsCovered() int { return s.monthsCovered }

// AverageBalance returns the optional average balance and whether it was set.
func (s BankStatement) AverageBalance() (decimal.Decimal, bool) {
	return s.averageBalance, s.hasAverageBalance
}

func copyAmounts(in []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	copy(out, in)
	return out
}
