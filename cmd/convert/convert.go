// Package convert implements the one-step PDF to categorized export command.
package convert

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/common"
	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

var (
	format      string
	appendSheet string
	noSummary   bool
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert [statement.pdf]",
	Short: "Parse a PDF statement and export processed transactions",
	Long: `Parse a PDF statement, process the extracted transactions and export them.
The format defaults to export.format from the configuration (csv unless set).
XLSX output can append a new sheet to an existing workbook with --append-sheet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, csv or xlsx (default from config)")
	Cmd.Flags().StringVar(&appendSheet, "append-sheet", "", "Append to an existing workbook under this sheet name (xlsx)")
	Cmd.Flags().BoolVar(&noSummary, "no-summary", false, "Omit the summary sheet (xlsx)")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	input := common.InputPath(root.SharedFlags.Input, args)
	if input == "" {
		return errors.New("no input PDF, pass --input or an argument")
	}

	c := root.GetContainer()
	opts := common.ExportOptions{
		Format:      format,
		Output:      root.SharedFlags.Output,
		AppendSheet: appendSheet,
		Summary:     !noSummary,
	}
	if opts.Format == "" {
		opts.Format = c.GetConfig().Export.Format
	}
	return Run(c, c.GetParser(), input, opts, cmd.OutOrStdout())
}

// Pipeline parses input and processes the extracted transactions. A parse
// error envelope stops the pipeline with its message.
func Pipeline(parser common.FileParser, processor common.Processor, input string) (models.ProcessResult, error) {
	parsed := parser.ParseFile(input)
	if parsed.Status == models.StatusError {
		return models.ProcessResult{}, errors.New(parsed.Message)
	}
	return processor.Process(parsed.Transactions), nil
}

// Run executes the pipeline with parser and exports the result using the
// container's processor and exporters.
func Run(c *container.Container, parser common.FileParser, input string, opts common.ExportOptions, out io.Writer) error {
	result, err := Pipeline(parser, c.GetProcessor(), input)
	if err != nil {
		return err
	}

	if err := common.Export(c, opts, out, result); err != nil {
		return err
	}

	c.GetLogger().Info("Conversion completed",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldCount, Value: result.TotalProcessed},
		logging.Field{Key: logging.FieldErrorCount, Value: result.TotalErrors})
	return nil
}
