package validate

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/printer"
	"github.com/Saturn-DEX/distributions/internal/runner"
)

// DistributionsCmd should be used to represent the 'validate distributions' command.
type DistributionsCmd struct {
	*internalcmd.BaseCmd
	Format string
}

// NewDistributionsCmd creates a newly configured (Cobra) command.
func NewDistributionsCmd(logger hclog.Logger) *cobra.Command {
	c := &DistributionsCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("distributions"))

	cobraCommand := &cobra.Command{
		Use:   "distributions [paths...]",
		Short: "Validates distribution.json files.",
		Long: `Validates distribution.json files: required fields, address and merkle root
formats, token type, and the chainId/chainName consistency check against the
chain table. With no path arguments the file set comes from the CI
changed-file list, or a full registry walk when that list is empty.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Format,
		"format",
		internalcmd.FormatText,
		"Output format: text, json or yaml",
	)

	return cobraCommand
}

func (c *DistributionsCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := resolveFiles(args, cfg, discover.DistributionFilename)

	run := runner.New(c.Logger(), cfg.Table())
	results := run.Distributions(paths)

	handler, err := internalcmd.FormatHandler[runner.FileResult](cmd.OutOrStdout(), c.Format, printer.NewValidationResultPrinter())
	if err != nil {
		return err
	}
	if err := handler.HandleResults(results); err != nil {
		return err
	}

	return failure(results)
}
