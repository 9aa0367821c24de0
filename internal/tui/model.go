// Package tui provides the interactive Bubble Tea form for pensionproj.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-projector/internal/calculation"
	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/domain"
)

const (
	fieldAge = iota
	fieldSalary
	fieldContributionRate
	fieldInvestmentReturn
	fieldExpenseRatio
	fieldCurrentBalance
	fieldCount // sentinel
)

type fieldSpec struct {
	label     string
	unit      string
	digits    bool            // only 0-9 may be typed
	step      decimal.Decimal // pgup/pgdown increment for rate fields
	min, max  decimal.Decimal
	charLimit int
}

var fields = [fieldCount]fieldSpec{
	fieldAge:              {label: "Age", charLimit: 3},
	fieldSalary:           {label: "Salary", unit: "$", digits: true, charLimit: 12},
	fieldContributionRate: {label: "Contribution Rate", unit: "%", step: decimal.NewFromInt(1), min: decimal.Zero, max: decimal.NewFromInt(100), charLimit: 6},
	fieldInvestmentReturn: {label: "Investment Return", unit: "%", step: decimal.RequireFromString("0.1"), min: decimal.Zero, max: decimal.NewFromInt(15), charLimit: 6},
	fieldExpenseRatio:     {label: "Expense Ratio", unit: "%", step: decimal.RequireFromString("0.05"), min: decimal.Zero, max: decimal.NewFromInt(3), charLimit: 6},
	fieldCurrentBalance:   {label: "Current Balance", unit: "$", digits: true, charLimit: 14},
}

// Model is the root Bubble Tea model: six inputs and the projection they produce.
type Model struct {
	engine *calculation.ProjectionEngine
	inputs [fieldCount]textinput.Model
	focus  int

	result *domain.ProjectionResult
	err    error

	width int
}

// New builds the form pre-filled with defaults and computes the first projection.
func New(engine *calculation.ProjectionEngine, defaults domain.ProjectionInput) Model {
	values := config.FormValuesFrom(defaults)
	initial := [fieldCount]string{
		fieldAge:              values.Age,
		fieldSalary:           values.Salary,
		fieldContributionRate: values.ContributionRate,
		fieldInvestmentReturn: values.InvestmentReturn,
		fieldExpenseRatio:     values.ExpenseRatio,
		fieldCurrentBalance:   values.CurrentBalance,
	}

	m := Model{engine: engine}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = fields[i].charLimit
		ti.Width = 16
		ti.Prompt = ""
		ti.SetValue(initial[i])
		m.inputs[i] = ti
	}
	m.inputs[fieldAge].Focus()
	m.recompute()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Values returns the current raw field contents.
func (m Model) Values() config.FormValues {
	return config.FormValues{
		Age:              m.inputs[fieldAge].Value(),
		Salary:           m.inputs[fieldSalary].Value(),
		ContributionRate: m.inputs[fieldContributionRate].Value(),
		InvestmentReturn: m.inputs[fieldInvestmentReturn].Value(),
		ExpenseRatio:     m.inputs[fieldExpenseRatio].Value(),
		CurrentBalance:   m.inputs[fieldCurrentBalance].Value(),
	}
}

// Result returns the projection for the current field values.
func (m Model) Result() *domain.ProjectionResult {
	return m.result
}

func (m *Model) recompute() {
	res, err := m.engine.CalculateProjections(context.Background(), config.ParseForm(m.Values()))
	m.result, m.err = res, err
}
