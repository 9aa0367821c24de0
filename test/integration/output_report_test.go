package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/pension-projector/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	report := loadReport(t)
	dir := t.TempDir()

	for _, format := range output.AvailableFormatterNames() {
		t.Run(format, func(t *testing.T) {
			path, err := output.GenerateReport(report, format, dir)
			require.NoError(t, err)
			assert.Equal(t, "."+output.Extension(format), filepath.Ext(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestRecommendationAcrossScenarios(t *testing.T) {
	report := loadReport(t)
	rec := output.AnalyzeScenarios(report)
	assert.Equal(t, "Higher Contributions", rec.ScenarioName)
	assert.Equal(t, "Baseline", rec.BaselineScenario)
	assert.True(t, rec.BalanceChange.IsPositive())
}

func TestJSONReportCarriesEveryYear(t *testing.T) {
	report := loadReport(t)
	data, err := output.Render(report, "json")
	require.NoError(t, err)

	var decoded struct {
		Scenarios []struct {
			Name   string `json:"name"`
			Result struct {
				YearlyBalances []json.RawMessage `json:"yearly_balances"`
			} `json:"result"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Scenarios, 2)
	for _, sc := range decoded.Scenarios {
		assert.Len(t, sc.Result.YearlyBalances, 30, sc.Name)
	}
}

func TestCSVReportOrdersScenarios(t *testing.T) {
	report := loadReport(t)
	data, err := output.Render(report, "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "Baseline,"))
	assert.True(t, strings.HasPrefix(lines[2], "Higher Contributions,"))
}
