package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smblend/credit-service/internal/domain/valueobject"
)

func amounts(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestNewBankStatement_Valid(t *testing.T) {
	stmt, err := valueobject.NewBankStatement(
		amounts(1000, 1200, 1100, 1300),
		amounts(900, 950, 1000, 1050),
		2, 0,
	)
	require.NoError(t, err)

	assert.Len(t, stmt.MonthlyDeposits(), 4)
	assert.Equal(t, 2, stmt.NSFFees())
	// Months covered defaults to the series length.
	assert.Equal(t, 4, stmt.MonthsCovered())

	_, ok := stmt.AverageBalance()
	assert.False(t, ok)
}

func TestNewBankStatement_OddMonthCountRejected(t *testing.T) {
	_, err := valueobject.NewBankStatement(
		amounts(1000, 1200, 1100),
		amounts(900, 950, 1000),
		0, 0,
	)
	assert.ErrorIs(t, err, valueobject.ErrValidation)
}

func TestNewBankStatement_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		deposits    []decimal.Decimal
		withdrawals []decimal.Decimal
		nsfFees     int
		months      int
	}{
		{"empty deposits", nil, nil, 0, 0},
		{"mismatched lengths", amounts(1000, 1200), amounts(900), 0, 0},
		{"too many months", amounts(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14), amounts(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14), 0, 0},
		{"negative deposit", amounts(-1, 1200), amounts(900, 950), 0, 0},
		{"negative withdrawal", amounts(1000, 1200), amounts(-900, 950), 0, 0},
		{"negative nsf fees", amounts(1000, 1200), amounts(900, 950), -1, 0},
		{"months covered out of range", amounts(1000, 1200), amounts(900, 950), 0, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := valueobject.NewBankStatement(tt.deposits, tt.withdrawals, tt.nsfFees, tt.months)
			assert.ErrorIs(t, err, valueobject.ErrValidation)
		})
	}
}

func TestBankStatement_WithAverageBalance(t *testing.T) {
	stmt, err := valueobject.NewBankStatement(amounts(1000, 1200), amounts(900, 950), 0, 0)
	require.NoError(t, err)

	withBalance := stmt.WithAverageBalance(decimal.NewFromInt(5000))
	balance, ok := withBalance.AverageBalance()
	assert.True(t, ok)
	assert.True(t, balance.Equal(decimal.NewFromInt(5000)))

	// Original statement is unchanged.
	_, ok = stmt.AverageBalance()
	assert.False(t, ok)
}

func TestBankStatement_AccessorsReturnCopies(t *testing.T) {
	stmt, err := valueobject.NewBankStatement(amounts(1000, 1200), amounts(900, 950), 0, 0)
	require.NoError(t, err)

	deposits := stmt.MonthlyDeposits()
	deposits[0] = decimal.NewFromInt(-999)

	assert.True(t, stmt.MonthlyDeposits()[0].Equal(decimal.NewFromInt(1000)))
}
