package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/Saturn-DEX/distributions/cmd/validate"
	"github.com/Saturn-DEX/distributions/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

// Execute builds and runs the root command.
func Execute() error {
	logger, err := configureLogger()
	if err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}

	rootCmd := NewRootCmd(logger)

	return rootCmd.Execute()
}

func NewRootCmd(logger hclog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "distributions <command> [args]",
		Short:        "'distributions' validates token distribution registry files before merge.",
		Long:         longDescription(),
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewInitCmd(logger))
	rootCmd.AddCommand(NewChainsCmd(logger))
	rootCmd.AddCommand(validate.NewValidateCmd(logger))

	return rootCmd
}

func longDescription() string {
	return `The 'distributions' CLI checks submitted registry artifacts (distribution.json,
merkle-tree.json) for structural correctness. It is invoked by CI with a changed-file
list, or run locally against the whole registry.`
}

func configureLogger() (hclog.Logger, error) {
	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If DISTRIBUTIONS_LOG_PATH is not set, don't log anywhere.
	logOutput := io.Discard

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		logOutput = f
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "distributions",
		Level:  hclog.LevelFromString(getLogLevel()),
		Output: logOutput,
	})

	return logger, nil
}

func getLogLevel() string {
	lvl := strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
	switch lvl {
	case "trace", "debug", "info", "warn", "error", "off":
		return lvl
	default:
		return "info"
	}
}
