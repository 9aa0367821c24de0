package domain

import (
	"time"

	"github.com/rpgo/pension-projector/pkg/dateutil"
	"github.com/rpgo/pension-projector/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	// DefaultRetirementAge is the age at which contributions stop and the projection ends.
	DefaultRetirementAge = 65
	// MaxAge bounds any age the calculator accepts.
	MaxAge = 120
	// DefaultAnnuityFactor converts a retirement balance into an estimated annual income.
	DefaultAnnuityFactor = 20
)

// ProjectionInput holds the values a person enters into the calculator.
// Rates are percentages: 10 means 10%.
type ProjectionInput struct {
	Age              int             `yaml:"age" json:"age"`
	BirthDate        *time.Time      `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	ContributionRate decimal.Decimal `yaml:"contribution_rate" json:"contribution_rate"`
	InvestmentReturn decimal.Decimal `yaml:"investment_return" json:"investment_return"`
	ExpenseRatio     decimal.Decimal `yaml:"expense_ratio" json:"expense_ratio"`
	CurrentBalance   decimal.Decimal `yaml:"current_balance" json:"current_balance"`
}

// NetReturn returns the annual growth rate after expenses as a fraction (0.06 for 7% - 1%).
func (pi ProjectionInput) NetReturn() decimal.Decimal {
	return pi.InvestmentReturn.Sub(pi.ExpenseRatio).Div(decimal.NewFromInt(100))
}

// AnnualContribution returns the amount paid in each year.
func (pi ProjectionInput) AnnualContribution() decimal.Decimal {
	return money.NewMoneyFromDecimal(pi.Salary).Percent(pi.ContributionRate).Decimal
}

// AgeAt resolves the age used for the projection. An explicit age wins;
// otherwise the birth date is evaluated at the given time.
func (pi ProjectionInput) AgeAt(at time.Time) int {
	if pi.Age == 0 && pi.BirthDate != nil {
		return dateutil.Age(*pi.BirthDate, at)
	}
	return pi.Age
}

// YearlyBalance is one point of the projected trajectory.
type YearlyBalance struct {
	Year         int             `json:"year"`
	Age          int             `json:"age"`
	CalendarYear int             `json:"calendar_year"`
	Contribution decimal.Decimal `json:"contribution"`
	Growth       decimal.Decimal `json:"growth"`
	Balance      decimal.Decimal `json:"balance"`
}

// ProjectionResult is the full output of a projection run.
type ProjectionResult struct {
	Input                 ProjectionInput `json:"input"`
	StartAge              int             `json:"start_age"`
	RetirementAge         int             `json:"retirement_age"`
	YearlyBalances        []YearlyBalance `json:"yearly_balances"`
	FinalBalance          decimal.Decimal `json:"final_balance"`
	EstimatedAnnualIncome decimal.Decimal `json:"estimated_annual_income"`
	NetReturnRate         decimal.Decimal `json:"net_return_rate"`
	AnnualContribution    decimal.Decimal `json:"annual_contribution"`
	TotalContributions    decimal.Decimal `json:"total_contributions"`
	TotalGrowth           decimal.Decimal `json:"total_growth"`
	IncomeMethod          string          `json:"income_method"`
}

// Balances returns the ordered end-of-year balances.
func (pr ProjectionResult) Balances() []decimal.Decimal {
	out := make([]decimal.Decimal, len(pr.YearlyBalances))
	for i, yb := range pr.YearlyBalances {
		out[i] = yb.Balance
	}
	return out
}

// YearsToRetirement returns the number of projected years.
func (pr ProjectionResult) YearsToRetirement() int {
	return len(pr.YearlyBalances)
}

// ScenarioProjection pairs a named scenario with its result.
type ScenarioProjection struct {
	Name   string           `json:"name"`
	Result ProjectionResult `json:"result"`
}

// ProjectionReport is what the output formatters render.
type ProjectionReport struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Assumptions Assumptions          `json:"assumptions"`
	Scenarios   []ScenarioProjection `json:"scenarios"`
}
