package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizez/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "quizez",
	Short:        "Host and join real-time quiz sessions",
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		// Optional .env for local overrides; absence is not an error.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, hostCmd, joinCmd, bankCmd)
}

// loadConfig resolves settings from defaults, .env and the environment.
func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Interactive commands get the development
// encoder so event traffic reads well on a terminal.
func newLogger(interactive bool) (*zap.Logger, error) {
	if interactive {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
