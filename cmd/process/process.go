// Package process implements the command validating and categorizing raw
// transactions supplied as JSON.
package process

import (
	"io"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/common"
	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
)

var (
	format      string
	appendSheet string
	noSummary   bool
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process [transactions.json]",
	Short: "Validate, clean and categorize raw transactions",
	Long: `Read a JSON array of raw transactions from a file or stdin, validate and
clean every element, categorize it and write the process envelope. Invalid
elements are reported in validation_errors and do not fail the command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatJSON, "Output format: json, csv or xlsx")
	Cmd.Flags().StringVar(&appendSheet, "append-sheet", "", "Append to an existing workbook under this sheet name (xlsx)")
	Cmd.Flags().BoolVar(&noSummary, "no-summary", false, "Omit the summary sheet (xlsx)")
}

func processFunc(cmd *cobra.Command, args []string) error {
	data, err := common.ReadInput(common.InputPath(root.SharedFlags.Input, args), cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := common.ExportOptions{
		Format:      format,
		Output:      root.SharedFlags.Output,
		AppendSheet: appendSheet,
		Summary:     !noSummary,
	}
	return Run(root.GetContainer(), data, opts, cmd.OutOrStdout())
}

// Run processes a JSON array and exports the envelope.
func Run(c *container.Container, data []byte, opts common.ExportOptions, out io.Writer) error {
	result, err := c.GetProcessor().ProcessJSON(data)
	if err != nil {
		return err
	}

	if err := common.Export(c, opts, out, result); err != nil {
		return err
	}

	c.GetLogger().Info("Process completed",
		logging.Field{Key: logging.FieldCount, Value: result.TotalProcessed},
		logging.Field{Key: logging.FieldErrorCount, Value: result.TotalErrors})
	return nil
}
