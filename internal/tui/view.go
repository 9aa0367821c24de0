package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/output"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(output.ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(output.ColorTextMuted).Width(20)
	focusStyle   = lipgloss.NewStyle().Foreground(output.ColorAccent).Bold(true).Width(20)
	unitStyle    = lipgloss.NewStyle().Foreground(output.ColorTextDim)
	valueStyle   = lipgloss.NewStyle().Foreground(output.ColorGreen).Bold(true)
	lossStyle    = lipgloss.NewStyle().Foreground(output.ColorRed).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(output.ColorTextDim)
	errorStyle   = lipgloss.NewStyle().Foreground(output.ColorRed)
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(output.ColorBorder).
			Padding(0, 1)
)

// View renders the form, the headline figures and a sparkline of the balances.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Pension Projector"))
	b.WriteString("\n\n")

	var form strings.Builder
	for i, fs := range fields {
		label := labelStyle.Render(fs.label)
		if i == m.focus {
			label = focusStyle.Render("> " + fs.label)
		}
		form.WriteString(label)
		if fs.unit == "$" {
			form.WriteString(unitStyle.Render("$ "))
		}
		form.WriteString(m.inputs[i].View())
		if fs.unit == "%" {
			form.WriteString(unitStyle.Render(" " + config.FormatRate(config.ParseAmount(m.inputs[i].Value()))))
		}
		if i < fieldCount-1 {
			form.WriteString("\n")
		}
	}
	b.WriteString(sectionStyle.Render(form.String()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  tab/↓ next • shift+tab/↑ previous • pgup/pgdn adjust rate • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderResult() string {
	res := m.result
	var b strings.Builder

	balance := valueStyle
	if res.FinalBalance.IsNegative() {
		balance = lossStyle
	}
	fmt.Fprintf(&b, "  Projected Balance        %s\n", balance.Render(output.FormatCurrency(res.FinalBalance)))
	fmt.Fprintf(&b, "  Estimated Annual Income  %s\n", balance.Render(output.FormatCurrency(res.EstimatedAnnualIncome)))

	years := res.YearsToRetirement()
	if years == 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  Already at retirement age %d", res.RetirementAge)))
		b.WriteString("\n")
		return b.String()
	}

	values := make([]float64, years)
	for i, v := range res.Balances() {
		values[i] = v.InexactFloat64()
	}
	fmt.Fprintf(&b, "\n  Projected Pension Balance  %s\n", output.RenderSparkline(values))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d years, age %d to %d", years, res.StartAge, res.RetirementAge)))
	b.WriteString("\n")
	return b.String()
}
