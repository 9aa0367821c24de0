package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// SaveToFile writes a configuration as YAML.
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateAssumptions(&config.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateAssumptions checks only the fields that were set; zero values take defaults later.
func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	if a.RetirementAge < 0 || a.RetirementAge > 120 {
		return fmt.Errorf("retirement age must be between 1 and 120")
	}
	if a.AnnuityFactor.IsNegative() {
		return fmt.Errorf("annuity factor must be positive")
	}
	switch a.IncomeMethod {
	case "", domain.IncomeMethodAnnuity, domain.IncomeMethodFourPercent:
	default:
		return fmt.Errorf("income method must be '%s' or '%s'", domain.IncomeMethodAnnuity, domain.IncomeMethodFourPercent)
	}
	if a.WithdrawalRate.IsNegative() || a.WithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("withdrawal rate must be between 0 and 1")
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	return ip.ValidateInput(&scenario.ProjectionInput)
}

// ValidateInput applies the range checks shared by config files and the CLI flags.
// A birth date is checked through the age it gives today.
func (ip *InputParser) ValidateInput(input *domain.ProjectionInput) error {
	if age := input.AgeAt(time.Now()); age < 0 || age > domain.MaxAge {
		return fmt.Errorf("age must be between 0 and %d", domain.MaxAge)
	}
	if input.Salary.IsNegative() {
		return fmt.Errorf("salary cannot be negative")
	}
	if input.ContributionRate.IsNegative() || input.ContributionRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("contribution rate must be between 0 and 100")
	}
	if input.InvestmentReturn.LessThan(decimal.NewFromInt(-100)) {
		return fmt.Errorf("investment return cannot be less than -100%%")
	}
	if input.ExpenseRatio.IsNegative() {
		return fmt.Errorf("expense ratio cannot be negative")
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Assumptions: domain.Assumptions{
			RetirementAge: domain.DefaultRetirementAge,
			AnnuityFactor: decimal.NewFromInt(domain.DefaultAnnuityFactor),
			IncomeMethod:  domain.IncomeMethodAnnuity,
		},
		Scenarios: []domain.Scenario{
			{
				Name: "Baseline",
				ProjectionInput: domain.ProjectionInput{
					Age:              35,
					Salary:           decimal.NewFromInt(60000),
					ContributionRate: decimal.NewFromInt(10),
					InvestmentReturn: decimal.NewFromInt(7),
					ExpenseRatio:     decimal.NewFromInt(1),
					CurrentBalance:   decimal.NewFromInt(20000),
				},
			},
			{
				Name: "Higher Contributions",
				ProjectionInput: domain.ProjectionInput{
					Age:              35,
					Salary:           decimal.NewFromInt(60000),
					ContributionRate: decimal.NewFromInt(15),
					InvestmentReturn: decimal.NewFromInt(7),
					ExpenseRatio:     decimal.NewFromInt(1),
					CurrentBalance:   decimal.NewFromInt(20000),
				},
			},
			{
				Name: "Low-Cost Index Fund",
				ProjectionInput: domain.ProjectionInput{
					Age:              35,
					Salary:           decimal.NewFromInt(60000),
					ContributionRate: decimal.NewFromInt(10),
					InvestmentReturn: decimal.NewFromInt(7),
					ExpenseRatio:     decimal.NewFromFloat(0.1),
					CurrentBalance:   decimal.NewFromInt(20000),
				},
			},
		},
	}
}
