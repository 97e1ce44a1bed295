package validate

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/discover"
	"github.com/Saturn-DEX/distributions/internal/printer"
	"github.com/Saturn-DEX/distributions/internal/runner"
)

// AllCmd should be used to represent the 'validate all' command.
type AllCmd struct {
	*internalcmd.BaseCmd
	Format     string
	VerifyRoot bool
}

// NewAllCmd creates a newly configured (Cobra) command.
func NewAllCmd(logger hclog.Logger) *cobra.Command {
	c := &AllCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("all"))

	cobraCommand := &cobra.Command{
		Use:   "all [distributor-dirs...]",
		Short: "Validates distribution and merkle tree files together.",
		Long: `Runs both validators over the resolved file set. This is the CI entry point:
distribution.json files first, then merkle-tree.json files, each in discovery
order. Optional arguments name distributor directories to check instead of
resolving the set from the changed-file list or a registry walk.`,
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
		"Additionally recompute merkle roots from document leaves",
	)

	return cobraCommand
}

func (c *AllCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var distributions, trees []string
	if len(args) > 0 {
		distributions = filesInDirs(args, discover.DistributionFilename)
		trees = filesInDirs(args, discover.MerkleTreeFilename)
	} else {
		distributions = resolveFiles(nil, cfg, discover.DistributionFilename)
		trees = resolveFiles(nil, cfg, discover.MerkleTreeFilename)
	}

	run := runner.New(c.Logger(), cfg.Table(), runner.WithRootVerification(c.VerifyRoot))

	results := run.Distributions(distributions)
	results = append(results, run.Trees(trees)...)

	handler, err := internalcmd.FormatHandler[runner.FileResult](cmd.OutOrStdout(), c.Format, printer.NewValidationResultPrinter())
	if err != nil {
		return err
	}
	if err := handler.HandleResults(results); err != nil {
		return err
	}

	return failure(results)
}

// filesInDirs returns <dir>/<filename> for every argument directory where the
// file exists. Empty args yield nil, which lets normal resolution apply.
func filesInDirs(dirs []string, filename string) []string {
	var out []string
	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			out = append(out, path)
		}
	}

	return out
}
