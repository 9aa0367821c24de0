package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/pension-projector/internal/calculation"
	"github.com/rpgo/pension-projector/internal/domain"
)

func defaultInput() domain.ProjectionInput {
	return domain.ProjectionInput{
		Age:              35,
		Salary:           decimal.NewFromInt(60000),
		ContributionRate: decimal.NewFromInt(10),
		InvestmentReturn: decimal.NewFromInt(7),
		ExpenseRatio:     decimal.NewFromInt(1),
		CurrentBalance:   decimal.NewFromInt(20000),
	}
}

func newTestServer(t *testing.T) (*Server, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(calculation.NewProjectionEngine(), defaultInput(), logger), hook
}

func doRequest(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeProjection(t *testing.T, rec *httptest.ResponseRecorder) ProjectionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp ProjectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestProjectionQuery_UsesDefaults(t *testing.T) {
	s, _ := newTestServer(t)
	resp := decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection", nil))

	assert.Equal(t, 35, resp.Age)
	assert.Equal(t, 30, resp.YearsToRetirement)
	assert.Equal(t, "$617,680", resp.ProjectedBalanceDisplay)
	assert.Equal(t, "$30,884", resp.EstimatedIncomeDisplay)
	assert.True(t, resp.ProjectedBalance.Equal(decimal.RequireFromString("617679.89")))
	assert.Equal(t, "10%", resp.ContributionRateDisplay)
	assert.Equal(t, "7%", resp.InvestmentReturnDisplay)
	assert.Equal(t, "1%", resp.ExpenseRatioDisplay)
	require.Len(t, resp.Labels, 30)
	assert.Equal(t, 1, resp.Labels[0])
	assert.Equal(t, "27560.00", resp.YearlyBalances[0])
}

func TestProjectionQuery_SanitizesFields(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/projection?age=64&salary=50%2C000&contribution_rate=abc&current_balance=12abc", nil)
	resp := decodeProjection(t, rec)

	assert.Equal(t, 64, resp.Age)
	require.Len(t, resp.YearlyBalances, 1)
	// contribution rate "abc" is 0, so the only change is growth on 12: 12 * 1.06
	assert.Equal(t, "12.72", resp.YearlyBalances[0])
}

func TestProjectionQuery_AtRetirementAge(t *testing.T) {
	s, _ := newTestServer(t)
	resp := decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection?age=70", nil))

	assert.Equal(t, 0, resp.YearsToRetirement)
	assert.Empty(t, resp.Labels)
	assert.Equal(t, "$20,000", resp.ProjectedBalanceDisplay)
	assert.Equal(t, "$1,000", resp.EstimatedIncomeDisplay)
}

func TestProjectionQuery_ClampsAge(t *testing.T) {
	s, _ := newTestServer(t)

	resp := decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection?age=-5000", nil))
	assert.Equal(t, 0, resp.Age)
	assert.Equal(t, 65, resp.YearsToRetirement)
	assert.Len(t, resp.Labels, 65)

	resp = decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection?age=5000", nil))
	assert.Equal(t, 120, resp.Age)
	assert.Equal(t, 0, resp.YearsToRetirement)
}

func TestProjectionQuery_OutOfRangeNumberIsZero(t *testing.T) {
	s, _ := newTestServer(t)
	resp := decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection?age=64&salary=1e999999", nil))

	require.Len(t, resp.YearlyBalances, 1)
	// salary 0 means no contribution: 20000 * 1.06
	assert.Equal(t, "21200.00", resp.YearlyBalances[0])

	resp = decodeProjection(t, doRequest(t, s, http.MethodGet, "/api/projection?age=64&salary=1e20000000&current_balance=1e-20000000", nil))
	assert.Equal(t, "0.00", resp.YearlyBalances[0])
}

func TestReport_ClampsAge(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/report/csv?age=-8000&salary=1e20000000", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "Projection,0,0.00,"), lines[1])
	assert.Contains(t, lines[1], ",65,")
}

func TestProjectionBody(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"age": 35, "salary": "60,000", "contribution_rate": 10, "investment_return": "7", "expense_ratio": 1, "current_balance": 20000}`
	resp := decodeProjection(t, doRequest(t, s, http.MethodPost, "/api/projection", strings.NewReader(body)))

	assert.Equal(t, "$617,680", resp.ProjectedBalanceDisplay)
	assert.Len(t, resp.YearlyBalances, 30)
}

func TestProjectionBody_InvalidJSON(t *testing.T) {
	s, hook := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/projection", strings.NewReader("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid JSON body")

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "rejected request" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestReport(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		prefix      string
		attachment  bool
	}{
		{"pdf", "application/pdf", "%PDF-", true},
		{"detailed-csv", "text/csv; charset=utf-8", "Scenario,Year,Age", true},
		{"yearly", "text/csv; charset=utf-8", "Scenario,Year,Age", true},
		{"html", "text/html; charset=utf-8", "<!DOCTYPE html>", false},
		{"json", "application/json", "{", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, "/api/report/"+tt.format+"?age=60", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.prefix)))
			assert.Equal(t, tt.attachment, rec.Header().Get("Content-Disposition") != "")
		})
	}
}

func TestReport_UnknownFormat(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/report/xml", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported output format")
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="salary"`)
	assert.Contains(t, body, `value="60,000"`)
	assert.Contains(t, body, "Projected Pension Balance")
	assert.Contains(t, body, "'Balance ($)'")
	assert.Contains(t, body, `"10,000"`)
	assert.Contains(t, body, "$617,680")
}

func TestRequestLogger_ReusesRequestID(t *testing.T) {
	s, hook := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request handled", entry.Message)
	assert.Equal(t, "abc-123", entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "/healthz", entry.Data["path"])
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodDelete, "/api/projection", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
