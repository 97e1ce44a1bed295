package cmd

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/config"
	"github.com/Saturn-DEX/distributions/internal/flags"
)

// InitCmd should be used to represent the 'init' command.
type InitCmd struct {
	*internalcmd.BaseCmd
}

// NewInitCmd creates a newly configured (Cobra) command.
func NewInitCmd(logger hclog.Logger) *cobra.Command {
	c := &InitCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("init"))

	return &cobra.Command{
		Use:   "init",
		Short: "Writes a skeleton configuration file.",
		Long: `Writes a skeleton .distributions.toml configuration file. The file can extend the
built-in chain table and list extra registry folders to include in discovery.`,
		RunE: c.run,
	}
}

func (c *InitCmd) run(cmd *cobra.Command, args []string) error {
	loader := &config.DefaultLoader{}
	if err := loader.Init(flags.ConfigFile); err != nil {
		return err
	}

	c.Logger().Info("created config file", "path", flags.ConfigFile)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", flags.ConfigFile)

	return nil
}
