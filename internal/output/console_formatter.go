package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/rpgo/pension-projector/internal/domain"
)

// ConsoleFormatter renders the projection as bordered terminal tables with a sparkline.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, RenderTitle("PENSION PROJECTION"))
	fmt.Fprintln(&buf)

	for _, sc := range report.Scenarios {
		writeScenario(&buf, sc)
	}

	if len(report.Scenarios) > 1 {
		rows := make([][]string, 0, len(report.Scenarios))
		for _, sc := range report.Scenarios {
			rows = append(rows, []string{
				sc.Name,
				strconv.Itoa(sc.Result.YearsToRetirement()),
				FormatCurrency(sc.Result.FinalBalance),
				FormatCurrency(sc.Result.EstimatedAnnualIncome),
			})
		}
		fmt.Fprint(&buf, RenderTable(Table{
			Title:   "Scenario comparison",
			Headers: []string{"Scenario", "Years", "Projected Balance", "Est. Income"},
			Rows:    rows,
		}))

		rec := AnalyzeScenarios(report)
		if rec.ScenarioName != "" {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "  Highest balance: %s (Δ %s / %s vs %s)\n",
				rec.ScenarioName, FormatCurrency(rec.BalanceChange), FormatPercentage(rec.PercentageChange), rec.BaselineScenario)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, headerStyle.Render("  Assumptions"))
	for _, line := range GenerateAssumptions(report.Assumptions) {
		fmt.Fprintln(&buf, mutedStyle.Render("  • "+line))
	}

	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, sc domain.ScenarioProjection) {
	r := sc.Result
	in := r.Input

	summary := [][]string{
		{"Age", strconv.Itoa(r.StartAge)},
		{"Salary", FormatCurrency(in.Salary)},
		{"Contribution Rate", in.ContributionRate.String() + "%"},
		{"Investment Return", in.InvestmentReturn.String() + "%"},
		{"Expense Ratio", in.ExpenseRatio.String() + "%"},
		{"Current Balance", FormatCurrency(in.CurrentBalance)},
		{"---"},
		{"Years to Retirement", strconv.Itoa(r.YearsToRetirement())},
		{"Annual Contribution", FormatCurrency(r.AnnualContribution)},
		{"Net Return", FormatRate(r.NetReturnRate)},
		{"Total Contributions", FormatCurrency(r.TotalContributions)},
		{"Total Growth", FormatCurrency(r.TotalGrowth)},
		{"---"},
		{"Projected Balance", balanceStyle.Render(FormatCurrency(r.FinalBalance))},
		{"Estimated Income", balanceStyle.Render(FormatCurrency(r.EstimatedAnnualIncome)) + "/yr"},
	}
	fmt.Fprint(buf, RenderTable(Table{
		Title:   sc.Name,
		Headers: []string{"Metric", "Value"},
		Rows:    summary,
	}))

	if len(r.YearlyBalances) == 0 {
		fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("  Already at retirement age %d: no projection years.", r.RetirementAge)))
		fmt.Fprintln(buf)
		return
	}

	values := make([]float64, len(r.YearlyBalances))
	rows := make([][]string, 0, len(r.YearlyBalances))
	for i, yb := range r.YearlyBalances {
		values[i] = yb.Balance.InexactFloat64()
		balance := FormatCurrencyCents(yb.Balance)
		if yb.Balance.IsNegative() {
			balance = lossStyle.Render(balance)
		}
		rows = append(rows, []string{
			strconv.Itoa(yb.Year),
			strconv.Itoa(yb.Age),
			FormatCurrencyCents(yb.Contribution),
			FormatCurrencyCents(yb.Growth),
			balance,
		})
	}

	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "  Balance  %s\n", RenderSparkline(values))
	fmt.Fprintf(buf, "           %s\n", mutedStyle.Render(fmt.Sprintf("year 1 → year %d", len(values))))
	fmt.Fprintln(buf)
	fmt.Fprint(buf, RenderTable(Table{
		Headers: []string{"Year", "Age", "Contribution", "Growth", "Balance"},
		Rows:    rows,
	}))
	fmt.Fprintln(buf)
}
