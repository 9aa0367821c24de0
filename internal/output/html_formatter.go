package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/rpgo/pension-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a Chart.js balance chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"cents": FormatCurrencyCents,
	"rate":  FormatRate,
	"pct":   FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartData is the shape handed to the page script for one scenario.
type chartData struct {
	Labels []int    `json:"labels"`
	Data   []string `json:"data"`
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	charts := make([]chartData, len(report.Scenarios))
	for i := range report.Scenarios {
		labels, data := ChartSeries(&report.Scenarios[i].Result)
		charts[i] = chartData{Labels: labels, Data: data}
	}

	data := struct {
		*domain.ProjectionReport
		Recommendation Recommendation
		Assumptions    []string
		Charts         []chartData
	}{report, AnalyzeScenarios(report), GenerateAssumptions(report.Assumptions), charts}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
