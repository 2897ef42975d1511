// Package parse implements the command extracting raw transactions from a PDF.
package parse

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/common"
	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse [statement.pdf]",
	Short: "Extract raw transactions from a PDF statement as JSON",
	Long: `Extract raw transactions from a PDF statement. Tables are read first and
page text is scanned line by line when tables yield nothing. The parse
envelope is written as JSON to --output or stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	input := common.InputPath(root.SharedFlags.Input, args)
	if input == "" {
		return errors.New("no input PDF, pass --input or an argument")
	}

	c := root.GetContainer()
	return Run(c.GetParser(), input, root.SharedFlags.Output, cmd.OutOrStdout(), c.GetLogger())
}

// Run parses input and writes the envelope. An error envelope is still
// written, and its message is returned as the error.
func Run(p common.FileParser, input, output string, out io.Writer, logger logging.Logger) error {
	result := p.ParseFile(input)

	if err := common.WriteJSON(output, out, result); err != nil {
		return err
	}
	if result.Status == models.StatusError {
		return errors.New(result.Message)
	}

	logger.Info("Parse completed",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldBankType, Value: result.BankType},
		logging.Field{Key: logging.FieldCount, Value: result.TotalTransactions})
	return nil
}
