package server

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/internal/output"
)

//go:embed templates/index.html.tmpl
var indexTemplateSource string

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateSource))

// ProjectionResponse is the body of /api/projection.
type ProjectionResponse struct {
	Age                     int             `json:"age"`
	YearsToRetirement       int             `json:"years_to_retirement"`
	ProjectedBalance        decimal.Decimal `json:"projected_balance"`
	EstimatedIncome         decimal.Decimal `json:"estimated_income"`
	ProjectedBalanceDisplay string          `json:"projected_balance_display"`
	EstimatedIncomeDisplay  string          `json:"estimated_income_display"`
	ContributionRateDisplay string          `json:"contribution_rate_display"`
	InvestmentReturnDisplay string          `json:"investment_return_display"`
	ExpenseRatioDisplay     string          `json:"expense_ratio_display"`
	Labels                  []int           `json:"labels"`
	YearlyBalances          []string        `json:"yearly_balances"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newProjectionResponse(res *domain.ProjectionResult) ProjectionResponse {
	labels, data := output.ChartSeries(res)
	return ProjectionResponse{
		Age:                     res.StartAge,
		YearsToRetirement:       res.YearsToRetirement(),
		ProjectedBalance:        res.FinalBalance.Round(2),
		EstimatedIncome:         res.EstimatedAnnualIncome.Round(2),
		ProjectedBalanceDisplay: output.FormatCurrency(res.FinalBalance),
		EstimatedIncomeDisplay:  output.FormatCurrency(res.EstimatedAnnualIncome),
		ContributionRateDisplay: config.FormatRate(res.Input.ContributionRate),
		InvestmentReturnDisplay: config.FormatRate(res.Input.InvestmentReturn),
		ExpenseRatioDisplay:     config.FormatRate(res.Input.ExpenseRatio),
		Labels:                  labels,
		YearlyBalances:          data,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	values := config.FormValuesFrom(s.defaults)
	res, err := s.engine.CalculateProjections(r.Context(), config.ParseForm(values))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	initial, err := json.Marshal(newProjectionResponse(res))
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	data := struct {
		Form    config.FormValues
		Initial template.JS
		Default string
	}{values, template.JS(initial), config.DefaultSalaryText}
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleProjectionQuery(w http.ResponseWriter, r *http.Request) {
	s.respondProjection(w, r, s.formFromQuery(r.URL.Query()))
}

func (s *Server) handleProjectionBody(w http.ResponseWriter, r *http.Request) {
	values, err := s.formFromJSON(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.respondProjection(w, r, values)
}

func (s *Server) respondProjection(w http.ResponseWriter, r *http.Request, values config.FormValues) {
	input := config.ParseForm(values)
	res, err := s.engine.CalculateProjections(r.Context(), input)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": RequestID(r.Context()),
		"age":        res.StartAge,
		"years":      res.YearsToRetirement(),
		"balance":    res.FinalBalance.StringFixed(2),
	}).Debug("projection calculated")

	writeJSON(w, http.StatusOK, newProjectionResponse(res))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := mux.Vars(r)["format"]
	f := output.GetFormatterByName(format)
	if f == nil {
		s.fail(w, r, http.StatusNotFound, fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format))
		return
	}

	cfg := &domain.Configuration{Scenarios: []domain.Scenario{{
		Name:            "Projection",
		ProjectionInput: config.ParseForm(s.formFromQuery(r.URL.Query())),
	}}}
	report, err := s.engine.RunScenarios(r.Context(), cfg)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	body, err := f.Format(report)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(f.Name()))
	switch f.Name() {
	case "pdf", "csv", "detailed-csv":
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "pension_projection."+output.Extension(f.Name())))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}

// formFromQuery overlays the query parameters on the default form values.
func (s *Server) formFromQuery(q url.Values) config.FormValues {
	values := config.FormValuesFrom(s.defaults)
	overlay := func(key string, dst *string) {
		if _, ok := q[key]; ok {
			*dst = q.Get(key)
		}
	}
	overlay("age", &values.Age)
	overlay("salary", &values.Salary)
	overlay("contribution_rate", &values.ContributionRate)
	overlay("investment_return", &values.InvestmentReturn)
	overlay("expense_ratio", &values.ExpenseRatio)
	overlay("current_balance", &values.CurrentBalance)
	return values
}

// formFromJSON reads a JSON object whose fields may be strings ("60,000") or numbers.
func (s *Server) formFromJSON(r *http.Request) (config.FormValues, error) {
	values := config.FormValuesFrom(s.defaults)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return values, fmt.Errorf("invalid JSON body: %w", err)
	}

	fields := map[string]*string{
		"age":               &values.Age,
		"salary":            &values.Salary,
		"contribution_rate": &values.ContributionRate,
		"investment_return": &values.InvestmentReturn,
		"expense_ratio":     &values.ExpenseRatio,
		"current_balance":   &values.CurrentBalance,
	}
	for key, dst := range fields {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		*dst = fieldText(msg)
	}
	return values, nil
}

// fieldText returns a JSON string's contents, or the literal text of any other value.
func fieldText(msg json.RawMessage) string {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	if string(msg) == "null" {
		return ""
	}
	return string(msg)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	entry := s.logger.WithError(err).WithField("request_id", RequestID(r.Context()))
	if status >= http.StatusInternalServerError {
		entry.Error("request error")
	} else {
		entry.Warn("rejected request")
	}

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
