package validate

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/printer"
	"github.com/Saturn-DEX/distributions/internal/runner"
)

// TreesCmd should be used to represent the 'validate trees' command.
type TreesCmd struct {
	*internalcmd.BaseCmd
	Format     string
	VerifyRoot bool
}

// NewTreesCmd creates a newly configured (Cobra) command.
func NewTreesCmd(logger hclog.Logger) *cobra.Command {
	c := &TreesCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("trees"))

	cobraCommand := &cobra.Command{
		Use:   "trees [paths...]",
		Short: "Validates merkle-tree.json files.",
		Long: `Validates merkle-tree.json files in either accepted shape: per-entry field
checks, duplicate leaf index detection, the tree-length floor, and the root
cross-check against the sibling distribution.json. With no path arguments the
file set comes from the CI changed-file list, or a full registry walk when
that list is empty.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Format,
		"format",
		internalcmd.FormatText,
		"Output format: text, json or yaml",
	)

	cobraCommand.Flags().BoolVar(
		&c.VerifyRoot,
		"verify-root",
		false,
		"Additionally recompute the merkle root from the document's leaves",
	)

	return cobraCommand
}

func (c *TreesCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := resolveFiles(args, cfg, discover.MerkleTreeFilename)

	run := runner.New(c.Logger(), cfg.Table(), runner.WithRootVerification(c.VerifyRoot))
	results := run.Trees(paths)

	handler, err := internalcmd.FormatHandler[runner.FileResult](cmd.OutOrStdout(), c.Format, printer.NewValidationResultPrinter())
	if err != nil {
		return err
	}
	if err := handler.HandleResults(results); err != nil {
		return err
	}

	return failure(results)
}
