package calculation

import (
	"testing"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeEstimators(t *testing.T) {
	tests := []struct {
		name      string
		estimator IncomeEstimator
		balance   decimal.Decimal
		expected  decimal.Decimal
		method    string
	}{
		{
			name:      "annuity factor of 20",
			estimator: NewAnnuityFactorEstimator(decimal.NewFromInt(20)),
			balance:   decimal.NewFromInt(500000),
			expected:  decimal.NewFromInt(25000),
			method:    domain.IncomeMethodAnnuity,
		},
		{
			name:      "annuity factor with negative balance",
			estimator: NewAnnuityFactorEstimator(decimal.NewFromInt(20)),
			balance:   decimal.NewFromInt(-1000),
			expected:  decimal.NewFromInt(-50),
			method:    domain.IncomeMethodAnnuity,
		},
		{
			name:      "four percent rule",
			estimator: NewWithdrawalRateEstimator(decimal.NewFromFloat(0.04)),
			balance:   decimal.NewFromInt(700000),
			expected:  decimal.NewFromInt(28000),
			method:    domain.IncomeMethodFourPercent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.estimator.EstimateAnnualIncome(tt.balance)
			assert.True(t, got.Equal(tt.expected), "expected %s, got %s", tt.expected, got)
			assert.Equal(t, tt.method, tt.estimator.Name())
		})
	}
}

func TestNewIncomeEstimator(t *testing.T) {
	est, err := NewIncomeEstimator(domain.Assumptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.IncomeMethodAnnuity, est.Name())

	est, err = NewIncomeEstimator(domain.Assumptions{IncomeMethod: domain.IncomeMethodFourPercent, WithdrawalRate: decimal.NewFromFloat(0.035)})
	require.NoError(t, err)
	assert.True(t, est.EstimateAnnualIncome(decimal.NewFromInt(100000)).Equal(decimal.NewFromInt(3500)))

	_, err = NewIncomeEstimator(domain.Assumptions{IncomeMethod: domain.IncomeMethodFourPercent, WithdrawalRate: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, ErrInvalidAssumptions)
}
