package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/calculation"
	"github.com/rpgo/pension-projector/internal/config"
	"github.com/rpgo/pension-projector/internal/domain"
)

var (
	flagVerbose  bool
	flagSettings string

	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "pensionproj",
	Short: "Pension balance projector",
	Long: `Projects a retirement account balance year by year until retirement age
from salary, contribution rate, investment return, expense ratio and current
balance, and estimates the annual income the final balance supports.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if flagVerbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file (default $XDG_CONFIG_HOME/pensionproj/config.toml)")
}

// loadSettings reads the user settings, falling back to defaults with a warning.
func loadSettings() config.Settings {
	path := flagSettings
	if path == "" {
		path = config.SettingsPath()
	}
	s, err := config.LoadSettingsFrom(path)
	if err != nil {
		logger.WithError(err).Warn("using default settings")
		return config.DefaultSettings()
	}
	return s
}

// newEngine builds an engine for the given assumptions, logging through logrus.
func newEngine(a domain.Assumptions) (*calculation.ProjectionEngine, error) {
	engine, err := calculation.NewProjectionEngineWithAssumptions(a)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(calculation.NewLogrusLogger(logger))
	return engine, nil
}
