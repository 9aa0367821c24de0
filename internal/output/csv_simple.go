package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/pension-projector/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Age", "Salary", "ContributionRate", "InvestmentReturn", "ExpenseRatio", "CurrentBalance", "YearsToRetirement", "TotalContributions", "TotalGrowth", "ProjectedBalance", "EstimatedIncome"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		r := sc.Result
		row := []string{
			sc.Name,
			strconv.Itoa(r.StartAge),
			r.Input.Salary.StringFixed(2),
			r.Input.ContributionRate.String(),
			r.Input.InvestmentReturn.String(),
			r.Input.ExpenseRatio.String(),
			r.Input.CurrentBalance.StringFixed(2),
			strconv.Itoa(r.YearsToRetirement()),
			r.TotalContributions.StringFixed(2),
			r.TotalGrowth.StringFixed(2),
			r.FinalBalance.StringFixed(2),
			r.EstimatedAnnualIncome.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
