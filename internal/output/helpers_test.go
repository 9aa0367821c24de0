package output

import (
	"context"
	"testing"
	"time"

	"github.com/rpgo/pension-projector/internal/calculation"
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func exampleInput(age int) domain.ProjectionInput {
	return domain.ProjectionInput{
		Age:              age,
		Salary:           decimal.NewFromInt(60000),
		ContributionRate: decimal.NewFromInt(10),
		InvestmentReturn: decimal.NewFromInt(7),
		ExpenseRatio:     decimal.NewFromInt(1),
		CurrentBalance:   decimal.NewFromInt(20000),
	}
}

// buildReport projects the given scenarios with the default engine at a fixed clock.
func buildReport(t *testing.T, scenarios ...domain.Scenario) *domain.ProjectionReport {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return fixedNow })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	engine := calculation.NewProjectionEngine()
	report, err := engine.RunScenarios(context.Background(), &domain.Configuration{Scenarios: scenarios})
	require.NoError(t, err)
	return report
}

func exampleReport(t *testing.T) *domain.ProjectionReport {
	return buildReport(t, domain.Scenario{Name: "Baseline", ProjectionInput: exampleInput(35)})
}

func comparisonReport(t *testing.T) *domain.ProjectionReport {
	higher := exampleInput(35)
	higher.ContributionRate = decimal.NewFromInt(15)
	return buildReport(t,
		domain.Scenario{Name: "Baseline", ProjectionInput: exampleInput(35)},
		domain.Scenario{Name: "Higher Contributions", ProjectionInput: higher},
	)
}

func domainScenario(name string, age int) domain.Scenario {
	return domain.Scenario{Name: name, ProjectionInput: exampleInput(age)}
}
