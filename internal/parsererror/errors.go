// Package parsererror defines the typed errors raised by the extraction and
// processing pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// ParseError represents a field that could not be parsed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that does not conform to the
// expected format, e.g. a file that is not a readable PDF.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// RowError explains why a table row or text match was not turned into a
// transaction candidate. Row errors are data: callers log and drop them.
type RowError struct {
	Source string // "table" or "text"
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s row rejected: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s row rejected: %s", e.Source, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required transaction field that is absent.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing " + e.Field
}

// ExportError wraps a failure while writing an output file.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export to '%s' failed: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsMissingField reports whether err is a MissingFieldError for field.
func IsMissingField(err error, field string) bool {
	var mfe *MissingFieldError
	return errors.As(err, &mfe) && mfe.Field == field
}
