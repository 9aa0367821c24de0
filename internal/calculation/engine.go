package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrInvalidAssumptions is returned when the engine is configured with constants it cannot use.
var ErrInvalidAssumptions = errors.New("invalid projection assumptions")

// ProjectionEngine runs the year-by-year balance projection.
// It holds no per-run state and is safe to share between goroutines.
type ProjectionEngine struct {
	Assumptions domain.Assumptions
	Income      IncomeEstimator
	Logger      Logger
}

// NewProjectionEngine creates an engine with the standard constants
// (retire at 65, income = balance / 20).
func NewProjectionEngine() *ProjectionEngine {
	assumptions := domain.DefaultAssumptions()
	return &ProjectionEngine{
		Assumptions: assumptions,
		Income:      NewAnnuityFactorEstimator(assumptions.AnnuityFactor),
		Logger:      NopLogger{},
	}
}

// NewProjectionEngineWithAssumptions creates an engine from configured assumptions.
// Unset fields fall back to the defaults.
func NewProjectionEngineWithAssumptions(a domain.Assumptions) (*ProjectionEngine, error) {
	a = a.WithDefaults()
	if a.RetirementAge < 1 || a.RetirementAge > 120 {
		return nil, fmt.Errorf("%w: retirement age %d must be between 1 and 120", ErrInvalidAssumptions, a.RetirementAge)
	}
	income, err := NewIncomeEstimator(a)
	if err != nil {
		return nil, err
	}
	return &ProjectionEngine{
		Assumptions: a,
		Income:      income,
		Logger:      NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// CalculateProjections projects the balance from the current age up to the
// retirement age. Each year the contribution is added first and the net
// return is applied to the new balance. There is no floor at zero.
func (pe *ProjectionEngine) CalculateProjections(ctx context.Context, input domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := nowFunc()
	age := input.AgeAt(start)
	years := dateutil.YearsUntilAge(age, pe.Assumptions.RetirementAge)

	contribution := input.AnnualContribution()
	netReturn := input.NetReturn()
	growthFactor := decimal.NewFromInt(1).Add(netReturn)

	balance := input.CurrentBalance
	totalGrowth := decimal.Zero
	yearly := make([]domain.YearlyBalance, 0, years)
	for i := 0; i < years; i++ {
		balance = balance.Add(contribution)
		grown := balance.Mul(growthFactor)
		growth := grown.Sub(balance)
		balance = grown
		totalGrowth = totalGrowth.Add(growth)

		yearly = append(yearly, domain.YearlyBalance{
			Year:         i + 1,
			Age:          age + i + 1,
			CalendarYear: dateutil.CalendarYear(start, i+1),
			Contribution: contribution,
			Growth:       growth,
			Balance:      balance,
		})
	}

	if years > 0 && netReturn.IsNegative() {
		pe.Logger.Debugf("net return %s%% is negative, losses compound for %d years", netReturn.Shift(2).String(), years)
	}

	income := pe.Income.EstimateAnnualIncome(balance)
	pe.Logger.Debugf("projected %d years from age %d: final balance %s, income %s (%s)",
		years, age, balance.StringFixed(2), income.StringFixed(2), pe.Income.Name())

	return &domain.ProjectionResult{
		Input:                 input,
		StartAge:              age,
		RetirementAge:         pe.Assumptions.RetirementAge,
		YearlyBalances:        yearly,
		FinalBalance:          balance,
		EstimatedAnnualIncome: income,
		NetReturnRate:         netReturn,
		AnnualContribution:    contribution,
		TotalContributions:    contribution.Mul(decimal.NewFromInt(int64(years))),
		TotalGrowth:           totalGrowth,
		IncomeMethod:          pe.Income.Name(),
	}, nil
}

// RunScenarios projects every scenario of a configuration in order.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	report := &domain.ProjectionReport{
		GeneratedAt: nowFunc(),
		Assumptions: pe.Assumptions,
		Scenarios:   make([]domain.ScenarioProjection, 0, len(config.Scenarios)),
	}

	for i, scenario := range config.Scenarios {
		result, err := pe.CalculateProjections(ctx, scenario.ProjectionInput)
		if err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, scenario.Name, err)
		}
		pe.Logger.Infof("scenario %q: %d years, final balance %s", scenario.Name, result.YearsToRetirement(), result.FinalBalance.StringFixed(2))
		report.Scenarios = append(report.Scenarios, domain.ScenarioProjection{
			Name:   scenario.Name,
			Result: *result,
		})
	}

	return report, nil
}
