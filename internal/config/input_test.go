package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "assumptions:\n" +
		"  retirement_age: 65\n" +
		"  annuity_factor: 20\n" +
		"scenarios:\n" +
		"  - name: \"Baseline\"\n" +
		"    age: 35\n" +
		"    salary: 60000\n" +
		"    contribution_rate: 10\n" +
		"    investment_return: 7\n" +
		"    expense_ratio: 1\n" +
		"    current_balance: 20000\n" +
		"  - name: \"From Birth Date\"\n" +
		"    birth_date: 1990-05-01T00:00:00Z\n" +
		"    salary: 45000\n" +
		"    contribution_rate: 6\n" +
		"    investment_return: 6.5\n" +
		"    expense_ratio: 0.25\n" +
		"    current_balance: 0\n"

	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte(testConfig))
	require.NoError(t, err)
	tmpfile.Close()

	parser := NewInputParser()
	config, err := parser.LoadFromFile(tmpfile.Name())

	require.NoError(t, err)
	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, 65, config.Assumptions.RetirementAge)
	assert.True(t, config.Assumptions.AnnuityFactor.Equal(decimal.NewFromInt(20)))

	baseline := config.Scenarios[0]
	assert.Equal(t, "Baseline", baseline.Name)
	assert.Equal(t, 35, baseline.Age)
	assert.True(t, baseline.Salary.Equal(decimal.NewFromInt(60000)))
	assert.True(t, baseline.CurrentBalance.Equal(decimal.NewFromInt(20000)))

	second := config.Scenarios[1]
	require.NotNil(t, second.BirthDate)
	assert.Equal(t, 1990, second.BirthDate.Year())
	assert.True(t, second.InvestmentReturn.Equal(decimal.NewFromFloat(6.5)))
	assert.True(t, second.ExpenseRatio.Equal(decimal.NewFromFloat(0.25)))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testConfig := `
scenarios:
	- name: "Tabbed"
		age: 35
`

	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte(testConfig))
	require.NoError(t, err)
	tmpfile.Close()

	parser := NewInputParser()
	config, err := parser.LoadFromFile(tmpfile.Name())

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - name: \"Too Much\"\n    age: 30\n    contribution_rate: 150\n"), 0644))

	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "contribution rate must be between 0 and 100")
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	err := parser.ValidateConfiguration(parser.CreateExampleConfiguration())
	assert.NoError(t, err)
}

func TestValidateConfiguration_Failures(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
	}{
		{
			name:    "no scenarios",
			mutate:  func(c *domain.Configuration) { c.Scenarios = nil },
			wantErr: "no scenarios provided",
		},
		{
			name:    "missing name",
			mutate:  func(c *domain.Configuration) { c.Scenarios[0].Name = "" },
			wantErr: "scenario name is required",
		},
		{
			name:    "duplicate name",
			mutate:  func(c *domain.Configuration) { c.Scenarios[1].Name = c.Scenarios[0].Name },
			wantErr: "duplicate scenario name",
		},
		{
			name:    "negative age",
			mutate:  func(c *domain.Configuration) { c.Scenarios[0].Age = -1 },
			wantErr: "age must be between 0 and 120",
		},
		{
			name: "birth date in the future",
			mutate: func(c *domain.Configuration) {
				future := time.Now().AddDate(5000, 0, 0)
				c.Scenarios[0].Age = 0
				c.Scenarios[0].BirthDate = &future
			},
			wantErr: "age must be between 0 and 120",
		},
		{
			name:    "negative salary",
			mutate:  func(c *domain.Configuration) { c.Scenarios[0].Salary = decimal.NewFromInt(-1) },
			wantErr: "salary cannot be negative",
		},
		{
			name:    "negative expense ratio",
			mutate:  func(c *domain.Configuration) { c.Scenarios[0].ExpenseRatio = decimal.NewFromInt(-1) },
			wantErr: "expense ratio cannot be negative",
		},
		{
			name:    "return below -100%",
			mutate:  func(c *domain.Configuration) { c.Scenarios[0].InvestmentReturn = decimal.NewFromInt(-101) },
			wantErr: "investment return cannot be less than -100%",
		},
		{
			name:    "retirement age out of range",
			mutate:  func(c *domain.Configuration) { c.Assumptions.RetirementAge = 200 },
			wantErr: "retirement age must be between 1 and 120",
		},
		{
			name:    "negative annuity factor",
			mutate:  func(c *domain.Configuration) { c.Assumptions.AnnuityFactor = decimal.NewFromInt(-20) },
			wantErr: "annuity factor must be positive",
		},
		{
			name:    "unknown income method",
			mutate:  func(c *domain.Configuration) { c.Assumptions.IncomeMethod = "guess" },
			wantErr: "income method must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveToFile(parser.CreateExampleConfiguration(), path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, 3)
	assert.Equal(t, "Low-Cost Index Fund", loaded.Scenarios[2].Name)
	assert.True(t, loaded.Scenarios[2].ExpenseRatio.Equal(decimal.NewFromFloat(0.1)))
	assert.Nil(t, loaded.Scenarios[0].BirthDate)
}
