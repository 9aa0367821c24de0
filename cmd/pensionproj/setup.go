package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/output"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues holds the wizard's text fields before they are parsed.
type setupValues struct {
	format    string
	directory string
	color     bool
	addr      string
	age       string
	salary    string
	rate      string
	ret       string
	expense   string
	balance   string
}

func newSetupValues(s config.Settings) setupValues {
	d := s.Defaults
	return setupValues{
		format:    s.Output.Format,
		directory: s.Output.Directory,
		color:     s.Output.Color,
		addr:      s.Server.Addr,
		age:       strconv.Itoa(d.Age),
		salary:    strconv.FormatFloat(d.Salary, 'f', -1, 64),
		rate:      strconv.FormatFloat(d.ContributionRate, 'f', -1, 64),
		ret:       strconv.FormatFloat(d.InvestmentReturn, 'f', -1, 64),
		expense:   strconv.FormatFloat(d.ExpenseRatio, 'f', -1, 64),
		balance:   strconv.FormatFloat(d.CurrentBalance, 'f', -1, 64),
	}
}

// apply copies the wizard answers onto s. Numbers go through the form sanitizer.
func (v setupValues) apply(s config.Settings) config.Settings {
	s.Output.Format = output.NormalizeFormatName(v.format)
	s.Output.Directory = v.directory
	s.Output.Color = v.color
	s.Server.Addr = v.addr
	s.Defaults.Age = config.ParseAge(v.age)
	s.Defaults.Salary = config.ParseAmount(v.salary).InexactFloat64()
	s.Defaults.ContributionRate = config.ParseAmount(v.rate).InexactFloat64()
	s.Defaults.InvestmentReturn = config.ParseAmount(v.ret).InexactFloat64()
	s.Defaults.ExpenseRatio = config.ParseAmount(v.expense).InexactFloat64()
	s.Defaults.CurrentBalance = config.ParseAmount(v.balance).InexactFloat64()
	return s
}

func validateNumber(s string) error {
	if config.ParseAmount(s).IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	formats := make([]huh.Option[string], 0)
	for _, name := range output.AvailableFormatterNames() {
		formats = append(formats, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pensionproj").
				Description("These answers pre-fill the calculator and pick the report format."),
			huh.NewSelect[string]().
				Title("Default report format").
				Options(formats...).
				Value(&v.format),
			huh.NewInput().
				Title("Report directory").
				Description("Leave blank for the current directory").
				Value(&v.directory),
			huh.NewConfirm().
				Title("Use colors in the terminal?").
				Value(&v.color),
			huh.NewInput().
				Title("Server address").
				Value(&v.addr),
		),
		huh.NewGroup(
			huh.NewInput().Title("Age").Value(&v.age).Validate(validateNumber),
			huh.NewInput().Title("Salary ($)").Value(&v.salary).Validate(validateNumber),
			huh.NewInput().Title("Contribution rate (%)").Value(&v.rate).Validate(validateNumber),
			huh.NewInput().Title("Investment return (%)").Value(&v.ret),
			huh.NewInput().Title("Expense ratio (%)").Value(&v.expense).Validate(validateNumber),
			huh.NewInput().Title("Current balance ($)").Value(&v.balance).Validate(validateNumber),
		).Title("Calculator defaults"),
	)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	path := flagSettings
	if path == "" {
		path = config.SettingsPath()
	}
	settings, _ := config.LoadSettingsFrom(path)

	values := newSetupValues(settings)
	if err := newSetupForm(&values).Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	if err := config.SaveSettingsTo(path, values.apply(settings)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", path)
	fmt.Fprintln(out, "  Run `pensionproj setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}
