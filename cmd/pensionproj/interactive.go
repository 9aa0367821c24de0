package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/calculation"
	"github.com/rpgo/pension-projector/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"tui"},
	Short:   "Edit the inputs in a terminal form and watch the projection update",
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()

	if settings.Output.Color {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// the engine logs nothing here so the alt screen stays clean
	engine := calculation.NewProjectionEngine()

	p := tea.NewProgram(tui.New(engine, settings.Defaults.Input()), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
