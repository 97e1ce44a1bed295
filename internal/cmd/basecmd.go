package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/Saturn-DEX/distributions/internal/cmd/output"
	"github.com/Saturn-DEX/distributions/internal/flags"
)

// BaseCmd carries the pieces shared by every CLI command.
type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger.
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command, building a fallback
// from flags/env when none was injected.
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Diagnostics for humans go to stdout/stderr; logs are separate and
	// default to discard unless a log path is configured.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, using stderr\n", logPath, err)
		} else {
			out = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "distributions-default",
		Level:  hclog.LevelFromString(logLevel),
		Output: out,
	})

	return c.logger
}

// Output format names accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatHandler returns the output handler for the requested format,
// using p to render items when the format is text.
func FormatHandler[T any](w io.Writer, format string, p output.ListPrinter[T]) (output.Handler[T], error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return output.NewTextHandler(w, p), nil
	case FormatJSON:
		return output.NewJSONHandler[T](w, 2), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, 2), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (expected %s, %s or %s)",
			format, FormatText, FormatJSON, FormatYAML)
	}
}
