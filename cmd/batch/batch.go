// Package batch implements the command converting a directory of statements.
package batch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fjacquet/statement-parser/cmd/common"
	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/internal/batch"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/processor"
)

// Options for a batch run.
type Options struct {
	InputDir  string
	OutputDir string
	Format    string
	// MergeFile, when set, also writes every transaction of the run to one
	// file, ordered by date.
	MergeFile string
	Workers   int
}

var opts Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every PDF statement in a directory",
	Long: `Convert every PDF statement directly inside --input-dir, writing one output
file per statement to --output-dir. With --merge the transactions of all
statements are also written to a single file, ordered by date, and
transactions found in two statements are reported as potential duplicates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if opts.Format == "" {
			opts.Format = c.GetConfig().Export.Format
		}
		return Run(cmd.Context(), c, c.GetParser(), opts, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&opts.InputDir, "input-dir", "", "Directory holding the PDF statements")
	Cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "", "Directory receiving one output per statement")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: json, csv or xlsx (default from config)")
	Cmd.Flags().StringVar(&opts.MergeFile, "merge", "", "Also write all transactions to this file")
	Cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Concurrent statements (default one per CPU)")
	_ = Cmd.MarkFlagRequired("input-dir")
	_ = Cmd.MarkFlagRequired("output-dir")
}

// Run converts the statements of opts.InputDir. Every statement is attempted;
// the returned error reports how many failed.
func Run(ctx context.Context, c *container.Container, parser batch.FileParser, opts Options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.GetLogger()
	format := strings.ToLower(opts.Format)

	files, err := batch.ListStatements(opts.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No PDF statements found")
		return nil
	}

	results := batch.NewRunner(parser, c.GetProcessor(), logger, opts.Workers).Run(ctx, files)

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		target := batch.OutputPath(opts.OutputDir, res.Path, format)
		if err := common.Export(c, common.ExportOptions{Format: format, Output: target, Summary: true}, out, res.Result); err != nil {
			return err
		}
	}

	if opts.MergeFile != "" {
		merged, err := mergedResult(results, c)
		if err != nil {
			return err
		}
		if err := common.Export(c, common.ExportOptions{Format: format, Output: opts.MergeFile, Summary: true}, out, merged); err != nil {
			return err
		}
		logger.Info("Wrote merged transactions",
			logging.Field{Key: logging.FieldRunID, Value: merged.RunID},
			logging.Field{Key: logging.FieldOutputFile, Value: opts.MergeFile},
			logging.Field{Key: logging.FieldCount, Value: merged.TotalProcessed})
	}

	if failed := batch.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(results))
	}
	return nil
}

func mergedResult(results []batch.FileResult, c *container.Container) (models.ProcessResult, error) {
	txs := batch.Merge(results, c.GetLogger())

	validationErrors := []models.ValidationError{}
	for _, res := range results {
		validationErrors = append(validationErrors, res.Result.ValidationErrors...)
	}

	summary, err := processor.Summarize(txs)
	if err != nil {
		return models.ProcessResult{}, fmt.Errorf("failed to summarize merged transactions: %w", err)
	}

	return models.ProcessResult{
		RunID:            uuid.NewString(),
		Status:           models.StatusSuccess,
		Transactions:     txs,
		TotalProcessed:   len(txs),
		TotalErrors:      len(validationErrors),
		ValidationErrors: validationErrors,
		Summary:          summary,
	}, nil
}
