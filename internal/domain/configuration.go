package domain

import (
	"github.com/shopspring/decimal"
)

// Income estimation methods understood by the calculation engine.
const (
	IncomeMethodAnnuity     = "annuity_factor"
	IncomeMethodFourPercent = "4_percent_rule"
)

// Configuration is the YAML document accepted by `pensionproj project --config`.
type Configuration struct {
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
	Scenarios   []Scenario  `yaml:"scenarios" json:"scenarios"`
}

// Assumptions are the fixed modeling constants. Zero values fall back to defaults.
type Assumptions struct {
	RetirementAge  int             `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	AnnuityFactor  decimal.Decimal `yaml:"annuity_factor,omitempty" json:"annuity_factor,omitempty"`
	IncomeMethod   string          `yaml:"income_method,omitempty" json:"income_method,omitempty"`
	WithdrawalRate decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
}

// WithDefaults returns a copy with unset fields populated.
func (a Assumptions) WithDefaults() Assumptions {
	if a.RetirementAge == 0 {
		a.RetirementAge = DefaultRetirementAge
	}
	if a.AnnuityFactor.IsZero() {
		a.AnnuityFactor = decimal.NewFromInt(DefaultAnnuityFactor)
	}
	if a.IncomeMethod == "" {
		a.IncomeMethod = IncomeMethodAnnuity
	}
	if a.WithdrawalRate.IsZero() {
		a.WithdrawalRate = decimal.NewFromFloat(0.04)
	}
	return a
}

// DefaultAssumptions returns the calculator's standard constants.
func DefaultAssumptions() Assumptions {
	return Assumptions{}.WithDefaults()
}

// Scenario is a named set of calculator inputs.
type Scenario struct {
	Name            string `yaml:"name" json:"name"`
	ProjectionInput `yaml:",inline"`
}
