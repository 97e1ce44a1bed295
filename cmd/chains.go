package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/Saturn-DEX/distributions/internal/chains"
	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/config"
	"github.com/Saturn-DEX/distributions/internal/flags"
	"github.com/Saturn-DEX/distributions/internal/printer"
)

// ChainsCmd should be used to represent the 'chains' command.
type ChainsCmd struct {
	*internalcmd.BaseCmd
	Format string
}

// NewChainsCmd creates a newly configured (Cobra) command.
func NewChainsCmd(logger hclog.Logger) *cobra.Command {
	c := &ChainsCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("chains"))

	cobraCommand := &cobra.Command{
		Use:   "chains",
		Short: "Prints the effective chain table.",
		Long: `Prints the chain-name to chain-id table in effect: the built-in chains merged
with any overrides from the configuration file. Folder discovery and the
chainId/chainName consistency check both use this table.`,
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

func (c *ChainsCmd) run(cmd *cobra.Command, args []string) error {
	loader := &config.DefaultLoader{}
	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return err
	}

	handler, err := internalcmd.FormatHandler[chains.Entry](cmd.OutOrStdout(), c.Format, printer.NewChainListPrinter())
	if err != nil {
		return err
	}

	return handler.HandleResults(cfg.Table().Entries())
}
