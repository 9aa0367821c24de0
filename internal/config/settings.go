package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Settings holds per-user preferences for pensionproj.
type Settings struct {
	Output   OutputSettings `toml:"output"`
	Server   ServerSettings `toml:"server"`
	Defaults FormDefaults   `toml:"defaults"`
}

// OutputSettings controls report rendering.
type OutputSettings struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory,omitempty"`
	Color     bool   `toml:"color"`
}

// ServerSettings holds the local form server settings.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// FormDefaults pre-fill the interactive form and the web page.
type FormDefaults struct {
	Age              int     `toml:"age"`
	Salary           float64 `toml:"salary"`
	ContributionRate float64 `toml:"contribution_rate"`
	InvestmentReturn float64 `toml:"investment_return"`
	ExpenseRatio     float64 `toml:"expense_ratio"`
	CurrentBalance   float64 `toml:"current_balance"`
}

// Input converts the defaults into a projection input.
func (fd FormDefaults) Input() domain.ProjectionInput {
	return domain.ProjectionInput{
		Age:              fd.Age,
		Salary:           decimal.NewFromFloat(fd.Salary),
		ContributionRate: decimal.NewFromFloat(fd.ContributionRate),
		InvestmentReturn: decimal.NewFromFloat(fd.InvestmentReturn),
		ExpenseRatio:     decimal.NewFromFloat(fd.ExpenseRatio),
		CurrentBalance:   decimal.NewFromFloat(fd.CurrentBalance),
	}
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Output: OutputSettings{
			Format: "console",
			Color:  true,
		},
		Server: ServerSettings{
			Addr: "127.0.0.1:8080",
		},
		Defaults: FormDefaults{
			Age:              35,
			Salary:           60000,
			ContributionRate: 10,
			InvestmentReturn: 7,
			ExpenseRatio:     1,
			CurrentBalance:   20000,
		},
	}
}

// SettingsDir returns the XDG-compliant config directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pensionproj")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pensionproj")
}

// SettingsPath returns the full path to the settings file.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the settings file, returning defaults if it doesn't exist.
func LoadSettings() (Settings, error) {
	return LoadSettingsFrom(SettingsPath())
}

// LoadSettingsFrom reads settings from path. Keys missing from the file keep their defaults.
func LoadSettingsFrom(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}

	return s, nil
}

// SaveSettings writes the settings to the default location.
func SaveSettings(s Settings) error {
	return SaveSettingsTo(SettingsPath(), s)
}

// SaveSettingsTo writes the settings to path, creating its directory.
func SaveSettingsTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// SettingsExist returns true if a settings file exists on disk.
func SettingsExist() bool {
	_, err := os.Stat(SettingsPath())
	return err == nil
}
