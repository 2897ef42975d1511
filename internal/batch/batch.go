// Package batch converts a directory of statements concurrently and merges
// the processed transactions.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// FileParser parses one statement file.
type FileParser interface {
	ParseFile(path string) models.ParseResult
}

// Processor processes the raw transactions of one statement.
type Processor interface {
	Process(txs []models.RawTransaction) models.ProcessResult
}

// FileResult is the outcome for one input file. Err is set when the file
// could not be parsed or the run was cancelled before reaching it.
type FileResult struct {
	Path   string
	Parse  models.ParseResult
	Result models.ProcessResult
	Err    error
}

// Runner converts statements with a bounded pool of workers. The parser and
// processor are shared by all workers.
type Runner struct {
	parser      FileParser
	processor   Processor
	logger      logging.Logger
	workerCount int
}

// NewRunner creates a Runner. workers <= 0 uses one worker per CPU.
func NewRunner(parser FileParser, processor Processor, logger logging.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		parser:      parser,
		processor:   processor,
		logger:      logger,
		workerCount: workers,
	}
}

// ListStatements returns the PDF files directly inside dir, sorted by name.
func ListStatements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Run converts files and returns one result per file, in input order.
// Files not started before ctx is cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, files []string) []FileResult {
	results := make([]FileResult, len(files))
	jobs := make(chan int)

	workers := r.workerCount
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.convert(files[i])
			}
		}()
	}

	next := 0
	for ; next < len(files); next++ {
		select {
		case jobs <- next:
			continue
		case <-ctx.Done():
		}
		break
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(files); i++ {
		results[i] = FileResult{Path: files[i], Err: ctx.Err()}
	}

	r.logger.Info("Batch conversion completed",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldErrorCount, Value: Failed(results)},
		logging.Field{Key: "workers", Value: workers})
	return results
}

func (r *Runner) convert(path string) FileResult {
	parsed := r.parser.ParseFile(path)
	if parsed.Status == models.StatusError {
		r.logger.Warn("Skipping statement",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldReason, Value: parsed.Message})
		return FileResult{Path: path, Parse: parsed, Err: errors.New(parsed.Message)}
	}
	return FileResult{
		Path:   path,
		Parse:  parsed,
		Result: r.processor.Process(parsed.Transactions),
	}
}

// Failed counts results carrying an error.
func Failed(results []FileResult) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Merge concatenates the transactions of successful results, ordered by
// date. Transactions sharing date and amount and description across two
// files are logged as potential duplicates and kept.
func Merge(results []FileResult, logger logging.Logger) []models.ProcessedTransaction {
	type sourced struct {
		tx   models.ProcessedTransaction
		path string
	}

	var all []sourced
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, tx := range res.Result.Transactions {
			all = append(all, sourced{tx: tx, path: res.Path})
		}
	}

	// Normalized dates are ISO and sort as strings.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].tx.Date < all[j].tx.Date
	})

	seen := make(map[string]string, len(all))
	merged := make([]models.ProcessedTransaction, len(all))
	for i, s := range all {
		merged[i] = s.tx

		key := fmt.Sprintf("%s|%.2f|%s", s.tx.Date, s.tx.RawAmount, strings.ToLower(s.tx.Description))
		first, ok := seen[key]
		if !ok {
			seen[key] = s.path
			continue
		}
		if first != s.path && logger != nil {
			logger.Warn("Potential duplicate transaction",
				logging.Field{Key: logging.FieldFile, Value: s.path},
				logging.Field{Key: "first_seen_in", Value: first},
				logging.Field{Key: "date", Value: s.tx.Date},
				logging.Field{Key: "amount", Value: s.tx.RawAmount})
		}
	}
	return merged
}

// OutputPath maps an input statement to outputDir/<name>.<ext>.
func OutputPath(outputDir, input, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(outputDir, base+"."+ext)
}
