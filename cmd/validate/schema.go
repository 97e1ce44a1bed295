package validate

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	internalcmd "github.com/Saturn-DEX/distributions/internal/cmd"
	"github.com/Saturn-DEX/distributions/internal/printer"
	"github.com/Saturn-DEX/distributions/internal/runner"
	"github.com/Saturn-DEX/distributions/internal/schema"
)

// SchemaCmd should be used to represent the 'validate schema' command.
type SchemaCmd struct {
	*internalcmd.BaseCmd
	Format string
}

// NewSchemaCmd creates a newly configured (Cobra) command.
func NewSchemaCmd(logger hclog.Logger) *cobra.Command {
	c := &SchemaCmd{BaseCmd: &internalcmd.BaseCmd{}}
	c.SetLogger(logger.Named("schema"))

	cobraCommand := &cobra.Command{
		Use:   "schema <file> [files...]",
		Short: "Validates files against their embedded JSON Schema.",
		Long: `Validates distribution.json or merkle-tree.json files against the embedded
JSON Schema documents. This is a strict whole-document check, complementary
to the field-level validators.`,
		Args: cobra.MinimumNArgs(1),
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

func (c *SchemaCmd) run(cmd *cobra.Command, args []string) error {
	results := make([]runner.FileResult, 0, len(args))

	for _, path := range args {
		msgs, err := schema.ValidateFile(path)
		if err != nil {
			msgs = []string{fmt.Sprintf("Schema validation error: %v", err)}
		}
		results = append(results, runner.FileResult{Path: path, Errors: msgs})
	}

	handler, err := internalcmd.FormatHandler[runner.FileResult](cmd.OutOrStdout(), c.Format, printer.NewValidationResultPrinter())
	if err != nil {
		return err
	}
	if err := handler.HandleResults(results); err != nil {
		return err
	}

	return failure(results)
}
