package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/internal/output"
)

var (
	flagAge              string
	flagSalary           string
	flagContributionRate string
	flagInvestmentReturn string
	flagExpenseRatio     string
	flagCurrentBalance   string
	flagConfig           string
	flagFormat           string
	flagOutput           string
	flagOutputDir        string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the pension balance to retirement",
	Long: `Runs the projection for the values given as flags, or for every scenario of
a YAML configuration file (--config). Flags that are not set fall back to the
defaults stored by 'pensionproj setup'.`,
	Example: `  pensionproj project --age 35 --salary 60,000 --contribution-rate 10
  pensionproj project --config scenarios.yaml --format pdf`,
	Args: cobra.NoArgs,
	RunE: runProject,
}

func init() {
	f := projectCmd.Flags()
	f.StringVar(&flagAge, "age", "", "Current age")
	f.StringVar(&flagSalary, "salary", "", "Annual salary, e.g. 60,000")
	f.StringVar(&flagContributionRate, "contribution-rate", "", "Share of salary contributed each year (%)")
	f.StringVar(&flagInvestmentReturn, "investment-return", "", "Annual investment return (%)")
	f.StringVar(&flagExpenseRatio, "expense-ratio", "", "Annual fund expense ratio (%)")
	f.StringVar(&flagCurrentBalance, "current-balance", "", "Current account balance")
	f.StringVarP(&flagConfig, "config", "c", "", "YAML scenario configuration file")
	f.StringVarP(&flagFormat, "format", "f", "", "Output format: console, csv, detailed-csv, json, html, pdf (default from settings)")
	f.StringVarP(&flagOutput, "output", "o", "", "Write the report to this file")
	f.StringVar(&flagOutputDir, "output-dir", "", "Directory for timestamped report files (default from settings)")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()

	cfg, err := projectionConfig(cmd, settings)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg.Assumptions)
	if err != nil {
		return err
	}
	report, err := engine.RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("projection failed: %w", err)
	}

	format := flagFormat
	if format == "" {
		format = settings.Output.Format
	}
	data, err := output.Render(report, format)
	if err != nil {
		return err
	}

	switch {
	case flagOutput != "":
		if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", flagOutput)
	case output.NormalizeFormatName(format) == "console" || output.NormalizeFormatName(format) == "json":
		_, err = cmd.OutOrStdout().Write(data)
		return err
	default:
		dir := flagOutputDir
		if dir == "" {
			dir = settings.Output.Directory
		}
		path, err := output.GenerateReport(report, format, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	}
	return nil
}

// projectionConfig loads --config, or builds a single scenario from the flags
// layered over the settings defaults.
func projectionConfig(cmd *cobra.Command, settings config.Settings) (*domain.Configuration, error) {
	if flagConfig != "" {
		cfg, err := config.NewInputParser().LoadFromFile(flagConfig)
		if err != nil {
			return nil, err
		}
		logger.WithField("scenarios", len(cfg.Scenarios)).Debug("loaded configuration")
		return cfg, nil
	}

	values := config.FormValuesFrom(settings.Defaults.Input())
	overlay := func(name string, src string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst = src
		}
	}
	overlay("age", flagAge, &values.Age)
	overlay("salary", flagSalary, &values.Salary)
	overlay("contribution-rate", flagContributionRate, &values.ContributionRate)
	overlay("investment-return", flagInvestmentReturn, &values.InvestmentReturn)
	overlay("expense-ratio", flagExpenseRatio, &values.ExpenseRatio)
	overlay("current-balance", flagCurrentBalance, &values.CurrentBalance)

	input := config.ParseForm(values)
	if err := config.NewInputParser().ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return &domain.Configuration{
		Scenarios: []domain.Scenario{{Name: "Projection", ProjectionInput: input}},
	}, nil
}
