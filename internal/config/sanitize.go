package config

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// DefaultSalaryText replaces an empty or non-positive salary field.
const DefaultSalaryText = "10,000"

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// FormValues are the raw strings of the calculator form.
type FormValues struct {
	Age              string `json:"age"`
	Salary           string `json:"salary"`
	ContributionRate string `json:"contribution_rate"`
	InvestmentReturn string `json:"investment_return"`
	ExpenseRatio     string `json:"expense_ratio"`
	CurrentBalance   string `json:"current_balance"`
}

// ParseForm turns raw form fields into a projection input. Fields that do
// not hold a number become zero; nothing here fails.
func ParseForm(v FormValues) domain.ProjectionInput {
	return domain.ProjectionInput{
		Age:              ParseAge(v.Age),
		Salary:           ParseAmount(v.Salary),
		ContributionRate: ParseAmount(v.ContributionRate),
		InvestmentReturn: ParseAmount(v.InvestmentReturn),
		ExpenseRatio:     ParseAmount(v.ExpenseRatio),
		CurrentBalance:   ParseAmount(v.CurrentBalance),
	}
}

// FormValuesFrom renders an input back into form strings.
func FormValuesFrom(in domain.ProjectionInput) FormValues {
	return FormValues{
		Age:              strconv.Itoa(in.Age),
		Salary:           money.NewMoneyFromDecimal(in.Salary).Whole(),
		ContributionRate: in.ContributionRate.String(),
		InvestmentReturn: in.InvestmentReturn.String(),
		ExpenseRatio:     in.ExpenseRatio.String(),
		CurrentBalance:   money.NewMoneyFromDecimal(in.CurrentBalance).Whole(),
	}
}

// ParseAge reads the leading integer of the field ("35.7" is 35), clamped
// to 0..domain.MaxAge.
func ParseAge(raw string) int {
	match := leadingInt.FindString(strings.TrimSpace(raw))
	if match == "" || strings.HasPrefix(match, "-") {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil || n > domain.MaxAge {
		return domain.MaxAge
	}
	return n
}

// ParseAmount reads an amount or percentage, ignoring thousands separators.
func ParseAmount(raw string) decimal.Decimal {
	return money.Parse(raw).Decimal
}

// FilterDigits keeps only digits, the way the salary and balance fields
// reject any other keystroke.
func FilterDigits(raw string) string {
	return money.DigitsOnly(raw)
}

// NormalizeSalary formats the salary field when it loses focus: positive
// amounts get thousands separators, anything else resets to the default.
func NormalizeSalary(raw string) string {
	m := money.Parse(raw)
	if !m.IsPositive() {
		return DefaultSalaryText
	}
	return m.Whole()
}

// NormalizeBalance formats the balance field when it loses focus. Text that
// holds no number is left as typed.
func NormalizeBalance(raw string) string {
	m, ok := money.TryParse(raw)
	if !ok {
		return raw
	}
	return m.Whole()
}

// FormatRate renders a percentage field label, e.g. "7%".
func FormatRate(rate decimal.Decimal) string {
	return rate.String() + "%"
}
