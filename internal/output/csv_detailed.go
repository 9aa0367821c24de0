package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/pension-projector/internal/domain"
)

// CSVDetailedExporter provides the yearly balance trajectory per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "CalendarYear", "Contribution", "Growth", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		for _, yb := range sc.Result.YearlyBalances {
			row := []string{
				sc.Name,
				strconv.Itoa(yb.Year),
				strconv.Itoa(yb.Age),
				strconv.Itoa(yb.CalendarYear),
				yb.Contribution.StringFixed(2),
				yb.Growth.StringFixed(2),
				yb.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
