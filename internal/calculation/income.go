package calculation

import (
	"fmt"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeEstimator converts a retirement balance into an estimated annual income.
type IncomeEstimator interface {
	EstimateAnnualIncome(balance decimal.Decimal) decimal.Decimal
	Name() string
}

// AnnuityFactorEstimator divides the balance by a fixed annuity factor.
type AnnuityFactorEstimator struct {
	Factor decimal.Decimal
}

// NewAnnuityFactorEstimator creates a new AnnuityFactorEstimator
func NewAnnuityFactorEstimator(factor decimal.Decimal) *AnnuityFactorEstimator {
	return &AnnuityFactorEstimator{Factor: factor}
}

// EstimateAnnualIncome returns balance / factor.
func (afe *AnnuityFactorEstimator) EstimateAnnualIncome(balance decimal.Decimal) decimal.Decimal {
	return balance.Div(afe.Factor)
}

// Name returns the name of this estimator
func (afe *AnnuityFactorEstimator) Name() string {
	return domain.IncomeMethodAnnuity
}

// WithdrawalRateEstimator takes a fixed share of the balance each year (4% rule).
type WithdrawalRateEstimator struct {
	Rate decimal.Decimal
}

// NewWithdrawalRateEstimator creates a new WithdrawalRateEstimator
func NewWithdrawalRateEstimator(rate decimal.Decimal) *WithdrawalRateEstimator {
	return &WithdrawalRateEstimator{Rate: rate}
}

// EstimateAnnualIncome returns balance * rate.
func (wre *WithdrawalRateEstimator) EstimateAnnualIncome(balance decimal.Decimal) decimal.Decimal {
	return balance.Mul(wre.Rate)
}

// Name returns the name of this estimator
func (wre *WithdrawalRateEstimator) Name() string {
	return domain.IncomeMethodFourPercent
}

// NewIncomeEstimator picks the estimator named by the assumptions.
func NewIncomeEstimator(a domain.Assumptions) (IncomeEstimator, error) {
	a = a.WithDefaults()
	switch a.IncomeMethod {
	case domain.IncomeMethodAnnuity:
		if !a.AnnuityFactor.IsPositive() {
			return nil, fmt.Errorf("%w: annuity factor must be positive, got %s", ErrInvalidAssumptions, a.AnnuityFactor)
		}
		return NewAnnuityFactorEstimator(a.AnnuityFactor), nil
	case domain.IncomeMethodFourPercent:
		if !a.WithdrawalRate.IsPositive() || a.WithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: withdrawal rate must be in (0, 1], got %s", ErrInvalidAssumptions, a.WithdrawalRate)
		}
		return NewWithdrawalRateEstimator(a.WithdrawalRate), nil
	default:
		return nil, fmt.Errorf("%w: income method must be '%s' or '%s', got %q",
			ErrInvalidAssumptions, domain.IncomeMethodAnnuity, domain.IncomeMethodFourPercent, a.IncomeMethod)
	}
}
