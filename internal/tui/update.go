package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-projector/internal/config"
)

// Update handles key presses. Every edit recomputes the projection.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "enter":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "pgup":
			m.stepRate(1)
			return m, nil
		case "pgdown":
			m.stepRate(-1)
			return m, nil
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if fields[m.focus].digits {
			m.inputs[m.focus].SetValue(config.FilterDigits(m.inputs[m.focus].Value()))
		}
		m.recompute()
		return m, cmd
	}

	return m, nil
}

// moveFocus blurs the current field, applying its leave-field formatting, and
// focuses the next one, wrapping around.
func (m Model) moveFocus(delta int) Model {
	m.blur(m.focus)
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	m.recompute()
	return m
}

func (m *Model) blur(i int) {
	switch i {
	case fieldSalary:
		m.inputs[i].SetValue(config.NormalizeSalary(m.inputs[i].Value()))
	case fieldCurrentBalance:
		m.inputs[i].SetValue(config.NormalizeBalance(m.inputs[i].Value()))
	}
	m.inputs[i].Blur()
}

// stepRate nudges a rate field by its step, clamped to the field's range.
func (m *Model) stepRate(dir int64) {
	fs := fields[m.focus]
	if fs.step.IsZero() {
		return
	}
	v := config.ParseAmount(m.inputs[m.focus].Value()).Add(fs.step.Mul(decimal.NewFromInt(dir)))
	if v.LessThan(fs.min) {
		v = fs.min
	}
	if v.GreaterThan(fs.max) {
		v = fs.max
	}
	m.inputs[m.focus].SetValue(v.String())
	m.recompute()
}
