package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTransactions() []models.ProcessedTransaction {
	return []models.ProcessedTransaction{
		{
			Date: "2024-01-01", Description: "ATM Cash Withdrawal", Amount: 500, RawAmount: -500,
			Type: models.TransactionTypeDebit, Balance: models.Float(1500), Category: models.CategoryWithdrawal, RowNum: 2,
		},
		{
			Date: "2024-01-02", Description: "Salary, January", Amount: 1234.5, RawAmount: 1234.5,
			Type: models.TransactionTypeCredit, Category: models.CategorySalary, RowNum: 3,
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(';', logging.NewMockLogger())
	require.NoError(t, w.Write(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date;description;amount;type;balance;category;raw_amount;row_num", lines[0])
	assert.Equal(t, "2024-01-01;ATM Cash Withdrawal;500.00;DEBIT;1500.00;WITHDRAWAL;-500.00;2", lines[1])
	assert.Equal(t, "2024-01-02;Salary, January;1234.50;CREDIT;;SALARY;1234.50;3", lines[2])
}

func TestCSVWriter_EmptyBatchWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(0, nil).Write(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestCSVWriter_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "statement.csv")
	logger := logging.NewMockLogger()
	w := NewCSVWriter(',', logger)

	require.NoError(t, w.WriteFile(path, sampleTransactions()))
	assert.True(t, logger.HasEntry("INFO", "Successfully wrote transactions to CSV file"))

	records, err := w.ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, NewRecord(sampleTransactions()[0]), records[0])
	assert.Equal(t, "Salary, January", records[1].Description)
	assert.Equal(t, "", records[1].Balance)
}

func TestCSVWriter_WriteFileError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := NewCSVWriter(',', logging.NewMockLogger()).WriteFile(filepath.Join(blocker, "out.csv"), nil)
	var exportErr *parsererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "csv", exportErr.Format)
}

func TestXLSXWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	w := NewXLSXWriter("", logging.NewMockLogger())

	summary := models.Summary{
		TotalTransactions: 2, TotalCredits: 1234.5, TotalDebits: 500, NetAmount: 734.5,
		OpeningBalance: models.Float(1500),
	}
	require.NoError(t, w.WriteFile(path, sampleTransactions(), &summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{DefaultSheetName, SummarySheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "ATM Cash Withdrawal", rows[1][1])
	assert.Equal(t, "500", rows[1][2])
	assert.Equal(t, "-500", rows[1][6])
	assert.Equal(t, "1234.5", rows[2][2])

	summaryRows, err := f.GetRows(SummarySheetName)
	require.NoError(t, err)
	require.Len(t, summaryRows, 6)
	assert.Equal(t, []string{"total_transactions", "2"}, summaryRows[0])
	assert.Equal(t, []string{"net_amount", "734.5"}, summaryRows[3])
	assert.Equal(t, []string{"opening_balance", "1500"}, summaryRows[4])
}

func TestXLSXWriter_AppendSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	w := NewXLSXWriter("January", logging.NewMockLogger())

	// Missing workbook is created.
	require.NoError(t, w.AppendSheet(path, "January", sampleTransactions()[:1]))
	require.NoError(t, w.AppendSheet(path, "February", sampleTransactions()))

	err := w.AppendSheet(path, "February", nil)
	assert.True(t, errors.Is(err, ErrSheetExists))

	assert.Error(t, w.AppendSheet(path, "", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"January", "February"}, f.GetSheetList())
	rows, err := f.GetRows("February")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
