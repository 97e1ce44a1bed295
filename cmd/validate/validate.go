// Package validate wires the registry validators into the CLI. The commands
// here are the CI entry points: they resolve the working file set, run the
// validators sequentially, print per-file diagnostics, and fail the process
// when any file has errors.
package validate

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/Saturn-DEX/distributions/internal/config"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/flags"
	"github.com/Saturn-DEX/distributions/internal/runner"
)

func NewValidateCmd(logger hclog.Logger) *cobra.Command {
	cobraCommand := &cobra.Command{
		Use:   "validate",
		Short: "Validates registry files.",
		Long:  "Validates submitted registry files (distribution.json, merkle-tree.json) for structural correctness.",
	}

	l := logger.Named("validate")

	cobraCommand.AddCommand(NewDistributionsCmd(l))
	cobraCommand.AddCommand(NewTreesCmd(l))
	cobraCommand.AddCommand(NewAllCmd(l))
	cobraCommand.AddCommand(NewSchemaCmd(l))

	return cobraCommand
}

// loadConfig reads the optional config file named by the global flag.
func loadConfig() (*config.Config, error) {
	loader := &config.DefaultLoader{}
	return loader.Load(flags.ConfigFile)
}

// resolveFiles returns the working file set for one validator run: explicit
// argument paths when given, else the matching entries of the CI changed-file
// list, else a full registry walk.
func resolveFiles(args []string, cfg *config.Config, filename string) []string {
	if len(args) > 0 {
		return args
	}

	return discover.Resolve(flags.RegistryDir, flags.ChangedFiles(), cfg.ChainFolders(), filename)
}

// failure converts a result set into the command error that drives the
// non-zero exit status, or nil when every file passed.
func failure(results []runner.FileResult) error {
	if failed := runner.FailureCount(results); failed > 0 {
		return fmt.Errorf("validation failed: %d of %d files have errors", failed, len(results))
	}

	return nil
}
