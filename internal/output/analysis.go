package output

import (
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	FinalBalance     decimal.Decimal
	EstimatedIncome  decimal.Decimal
	BalanceChange    decimal.Decimal
	PercentageChange decimal.Decimal
	BaselineScenario string
}

// AnalyzeScenarios picks the scenario with the highest final balance and
// compares it with the first scenario. Ties keep the earlier scenario.
func AnalyzeScenarios(report *domain.ProjectionReport) Recommendation {
	if report == nil || len(report.Scenarios) == 0 {
		return Recommendation{}
	}
	baseline := report.Scenarios[0]
	best := baseline
	for _, sc := range report.Scenarios[1:] {
		if sc.Result.FinalBalance.GreaterThan(best.Result.FinalBalance) {
			best = sc
		}
	}
	delta := best.Result.FinalBalance.Sub(baseline.Result.FinalBalance)
	pct := decimal.Zero
	if !baseline.Result.FinalBalance.IsZero() {
		pct = delta.Div(baseline.Result.FinalBalance.Abs()).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{
		ScenarioName:     best.Name,
		FinalBalance:     best.Result.FinalBalance,
		EstimatedIncome:  best.Result.EstimatedAnnualIncome,
		BalanceChange:    delta,
		PercentageChange: pct,
		BaselineScenario: baseline.Name,
	}
}
