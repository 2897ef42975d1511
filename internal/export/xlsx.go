package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is the transactions sheet name when none is configured.
	DefaultSheetName = "Transactions"
	// SummarySheetName is the sheet holding the batch summary.
	SummarySheetName = "Summary"
	defaultSheet     = "Sheet1"
)

// ErrSheetExists is returned when appending a sheet whose name is taken.
var ErrSheetExists = errors.New("sheet already exists")

// XLSXWriter writes processed transactions to spreadsheet workbooks.
type XLSXWriter struct {
	sheetName string
	logger    logging.Logger
}

// NewXLSXWriter creates an XLSXWriter whose transaction sheet is sheetName.
func NewXLSXWriter(sheetName string, logger logging.Logger) *XLSXWriter {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &XLSXWriter{sheetName: sheetName, logger: logger}
}

// SheetName returns the name of the transactions sheet.
func (w *XLSXWriter) SheetName() string {
	return w.sheetName
}

// WriteFile creates a new workbook at path holding txs and, when summary is
// not nil, a summary sheet. An existing file is replaced.
func (w *XLSXWriter) WriteFile(path string, txs []models.ProcessedTransaction, summary *models.Summary) error {
	logger := w.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	)

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	if err := f.SetSheetName(defaultSheet, w.sheetName); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	if err := writeTransactionSheet(f, w.sheetName, txs); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	if summary != nil {
		if _, err := f.NewSheet(SummarySheetName); err != nil {
			return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
		}
		for i, row := range summaryRows(*summary) {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(SummarySheetName, cell, &row); err != nil {
				return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	logger.WithField(logging.FieldSheet, w.sheetName).Info("Successfully wrote transactions to XLSX file")
	return nil
}

// AppendSheet adds a sheet named sheetName holding txs to the workbook at
// path. The workbook is created when it does not exist yet. Appending to an
// existing sheet name fails with ErrSheetExists.
func (w *XLSXWriter) AppendSheet(path, sheetName string, txs []models.ProcessedTransaction) error {
	logger := w.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldSheet, Value: sheetName},
	)

	if sheetName == "" {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: errors.New("sheet name is empty")}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Debug("Workbook does not exist, creating it")
		return NewXLSXWriter(sheetName, w.logger).WriteFile(path, txs, nil)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	if idx != -1 {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: fmt.Errorf("%w: %s", ErrSheetExists, sheetName)}
	}

	if _, err := f.NewSheet(sheetName); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	if err := writeTransactionSheet(f, sheetName, txs); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}
	if err := f.Save(); err != nil {
		return &parsererror.ExportError{Format: "xlsx", Path: path, Err: err}
	}

	logger.WithField(logging.FieldCount, len(txs)).Info("Appended sheet to XLSX file")
	return nil
}

func writeTransactionSheet(f *excelize.File, sheet string, txs []models.ProcessedTransaction) error {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, tx := range txs {
		var balance interface{} = ""
		if tx.Balance != nil {
			balance = *tx.Balance
		}
		row := []interface{}{
			tx.Date,
			tx.Description,
			tx.Amount,
			string(tx.Type),
			balance,
			tx.Category,
			tx.RawAmount,
			tx.RowNum,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "B", "B", 48)
}
