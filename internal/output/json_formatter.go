package output

import (
	"encoding/json"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// JSONFormatter serializes the report as pretty-printed JSON with amounts rounded to cents.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	return json.MarshalIndent(roundReport(report), "", "  ")
}

// roundReport returns a copy with every amount rounded to cents so exact
// decimal expansions don't leak into the document.
func roundReport(report *domain.ProjectionReport) *domain.ProjectionReport {
	out := *report
	out.Scenarios = make([]domain.ScenarioProjection, len(report.Scenarios))
	for i, sc := range report.Scenarios {
		r := sc.Result
		r.YearlyBalances = make([]domain.YearlyBalance, len(sc.Result.YearlyBalances))
		for j, yb := range sc.Result.YearlyBalances {
			yb.Contribution = cents(yb.Contribution)
			yb.Growth = cents(yb.Growth)
			yb.Balance = cents(yb.Balance)
			r.YearlyBalances[j] = yb
		}
		r.FinalBalance = cents(r.FinalBalance)
		r.EstimatedAnnualIncome = cents(r.EstimatedAnnualIncome)
		r.AnnualContribution = cents(r.AnnualContribution)
		r.TotalContributions = cents(r.TotalContributions)
		r.TotalGrowth = cents(r.TotalGrowth)
		out.Scenarios[i] = domain.ScenarioProjection{Name: sc.Name, Result: r}
	}
	return &out
}

func cents(d decimal.Decimal) decimal.Decimal {
	return money.NewMoneyFromDecimal(d).Round().Decimal
}
