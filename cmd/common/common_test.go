package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/export"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

func testContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func sampleResult() models.ProcessResult {
	return models.ProcessResult{
		RunID:  "run-1",
		Status: models.StatusSuccess,
		Transactions: []models.ProcessedTransaction{
			{Date: "2024-01-01", Description: "Salary Jan", Amount: 5000, Type: models.TransactionTypeCredit, Category: "SALARY", RawAmount: 5000, RowNum: 2},
			{Date: "2024-01-02", Description: "ATM cash", Amount: 200, Type: models.TransactionTypeDebit, Category: "WITHDRAWAL", RawAmount: -200, RowNum: 3},
		},
		TotalProcessed:   2,
		ValidationErrors: []models.ValidationError{},
		Summary: models.Summary{
			TotalTransactions: 2,
			TotalCredits:      5000,
			TotalDebits:       200,
			NetAmount:         4800,
		},
	}
}

func TestInputPath(t *testing.T) {
	assert.Equal(t, "flag.pdf", InputPath("flag.pdf", []string{"arg.pdf"}))
	assert.Equal(t, "arg.pdf", InputPath("", []string{"arg.pdf"}))
	assert.Equal(t, "", InputPath("", nil))
}

func TestReadInput(t *testing.T) {
	data, err := ReadInput("-", strings.NewReader("[1]"))
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(data))

	data, err = ReadInput("", strings.NewReader("[2]"))
	require.NoError(t, err)
	assert.Equal(t, "[2]", string(data))

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte("[3]"), 0600))
	data, err = ReadInput(path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "[3]", string(data))

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteJSON("", &out, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, out.String())

	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteJSON(path, nil, map[string]int{"b": 2}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(data))
}

func TestExport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Export(testContainer(t), ExportOptions{Format: "JSON"}, &out, sampleResult()))

	var decoded models.ProcessResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Transactions, 2)
}

func TestExport_CSVToStdout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Export(testContainer(t), ExportOptions{Format: FormatCSV}, &out, sampleResult()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(export.Columns, ","), lines[0])
	assert.Contains(t, lines[2], "-200.00")
}

func TestExport_CSVToFile(t *testing.T) {
	c := testContainer(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, Export(c, ExportOptions{Format: FormatCSV, Output: path}, nil, sampleResult()))

	records, err := c.GetCSVWriter().ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Salary Jan", records[0].Description)
	assert.Equal(t, 3, records[1].RowNum)
}

func TestExport_XLSX(t *testing.T) {
	c := testContainer(t)
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, Export(c, ExportOptions{Format: FormatXLSX, Output: path, Summary: true}, nil, sampleResult()))
	require.NoError(t, Export(c, ExportOptions{Format: FormatXLSX, Output: path, AppendSheet: "February"}, nil, sampleResult()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.DefaultSheetName, export.SummarySheetName, "February"}, f.GetSheetList())

	err = Export(c, ExportOptions{Format: FormatXLSX, Output: path, AppendSheet: "February"}, nil, sampleResult())
	assert.ErrorIs(t, err, export.ErrSheetExists)
}

func TestExport_Errors(t *testing.T) {
	c := testContainer(t)

	err := Export(c, ExportOptions{Format: FormatXLSX}, &bytes.Buffer{}, sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --output")

	err = Export(c, ExportOptions{Format: "ods"}, &bytes.Buffer{}, sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
