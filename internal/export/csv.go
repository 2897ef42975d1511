package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = ','

// CSVWriter writes processed transactions as delimited text.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a CSVWriter. A zero delimiter means a comma.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

// Delimiter returns the configured field separator.
func (w *CSVWriter) Delimiter() rune {
	return w.delimiter
}

// Write marshals txs to out with a header row. An empty batch still writes
// the header.
func (w *CSVWriter) Write(out io.Writer, txs []models.ProcessedTransaction) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	rows := records(txs)
	if len(rows) == 0 {
		if err := csvWriter.Write(Columns); err != nil {
			return err
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	return gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter))
}

// WriteFile writes txs to path, creating parent directories.
func (w *CSVWriter) WriteFile(path string, txs []models.ProcessedTransaction) error {
	logger := w.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(w.delimiter)},
	)
	logger.Info("Writing transactions to CSV file")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return &parsererror.ExportError{Format: "csv", Path: path, Err: fmt.Errorf("error creating directory: %w", err)}
	}

	file, err := os.Create(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return &parsererror.ExportError{Format: "csv", Path: path, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := w.Write(file, txs); err != nil {
		logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return &parsererror.ExportError{Format: "csv", Path: path, Err: err}
	}

	logger.Info("Successfully wrote transactions to CSV file")
	return nil
}

// ReadRecords reads a file written by WriteFile back into records.
func (w *CSVWriter) ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = w.delimiter

	var rows []Record
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}
