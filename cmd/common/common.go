// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// FileParser parses a statement file into a parse envelope.
type FileParser interface {
	ParseFile(path string) models.ParseResult
}

// Processor turns raw transactions into a process envelope.
type Processor interface {
	Process(txs []models.RawTransaction) models.ProcessResult
	ProcessJSON(data []byte) (models.ProcessResult, error)
}

// Output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportOptions controls how a process envelope is written.
type ExportOptions struct {
	Format string
	// Output is the destination file. Empty means the command's stdout,
	// which XLSX does not support.
	Output string
	// AppendSheet adds the transactions to an existing workbook under this
	// sheet name instead of creating a new workbook.
	AppendSheet string
	// Summary adds a summary sheet to new XLSX workbooks.
	Summary bool
}

// InputPath returns the --input value, or the first positional argument.
func InputPath(flag string, args []string) string {
	if flag != "" {
		return flag
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// ReadInput reads path, or in when path is empty or "-".
func ReadInput(path string, in io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("error reading input file %s: %w", path, err)
	}
	return data, nil
}

// WriteJSON writes v as indented JSON to path, or to out when path is empty.
func WriteJSON(path string, out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = out.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Export writes result using the exporters held by c.
func Export(c *container.Container, opts ExportOptions, out io.Writer, result models.ProcessResult) error {
	logger := c.GetLogger()
	format := strings.ToLower(strings.TrimSpace(opts.Format))

	switch format {
	case FormatJSON:
		if err := WriteJSON(opts.Output, out, result); err != nil {
			return err
		}

	case FormatCSV:
		if opts.Output == "" {
			if err := c.GetCSVWriter().Write(out, result.Transactions); err != nil {
				return err
			}
			break
		}
		if err := c.GetCSVWriter().WriteFile(opts.Output, result.Transactions); err != nil {
			return err
		}

	case FormatXLSX:
		if opts.Output == "" {
			return fmt.Errorf("xlsx output needs a file, use --output")
		}
		if opts.AppendSheet != "" {
			if err := c.GetXLSXWriter().AppendSheet(opts.Output, opts.AppendSheet, result.Transactions); err != nil {
				return err
			}
			break
		}
		var summary *models.Summary
		if opts.Summary {
			summary = &result.Summary
		}
		if err := c.GetXLSXWriter().WriteFile(opts.Output, result.Transactions, summary); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown output format %q (want json, csv or xlsx)", opts.Format)
	}

	if opts.Output != "" {
		logger.Info("Wrote output",
			logging.Field{Key: logging.FieldOutputFile, Value: opts.Output},
			logging.Field{Key: "format", Value: format},
			logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	}
	return nil
}
