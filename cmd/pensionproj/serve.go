package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/internal/server"
)

// addrEnv overrides the listen address; it may also come from a .env file.
const addrEnv = "PENSIONPROJ_ADDR"

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator form and projection API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from $"+addrEnv+" or settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found")
	}
	settings := loadSettings()

	addr := resolveAddr(flagAddr, os.Getenv(addrEnv), settings.Server.Addr)

	serverLogger := logrus.New()
	serverLogger.SetOutput(cmd.ErrOrStderr())
	serverLogger.SetFormatter(&logrus.JSONFormatter{})
	serverLogger.SetLevel(logrus.InfoLevel)
	if flagVerbose {
		serverLogger.SetLevel(logrus.DebugLevel)
	}

	engine, err := newEngine(domain.DefaultAssumptions())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(engine, settings.Defaults.Input(), serverLogger).ListenAndServe(ctx, addr)
}

// resolveAddr picks the first non-empty of flag, environment and settings.
func resolveAddr(flag, env, fromSettings string) string {
	for _, addr := range []string{flag, env, fromSettings} {
		if addr != "" {
			return addr
		}
	}
	return "127.0.0.1:8080"
}
