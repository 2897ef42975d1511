package process

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-parser/cmd/common"
	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/container"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

func TestRun_JSON(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), logger)
	require.NoError(t, err)

	input := []byte(`[
		{"date": "15/03/2024", "description": "  Netflix   subscription ", "amount": -649, "balance": 10000},
		{"date": "2024-03-16", "description": "Salary March", "amount": "85000.50"},
		{"date": "2024-03-17", "description": "", "amount": 10}
	]`)

	var out bytes.Buffer
	require.NoError(t, Run(c, input, common.ExportOptions{Format: common.FormatJSON}, &out))

	var result models.ProcessResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, models.StatusSuccess, result.Status)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.TotalErrors)

	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "2024-03-15", result.Transactions[0].Date)
	assert.Equal(t, "Netflix subscription", result.Transactions[0].Description)
	assert.Equal(t, "SUBSCRIPTION", result.Transactions[0].Category)
	assert.Equal(t, models.TransactionTypeDebit, result.Transactions[0].Type)
	assert.Equal(t, "SALARY", result.Transactions[1].Category)

	require.Len(t, result.ValidationErrors, 1)
	assert.Equal(t, 2, result.ValidationErrors[0].Index)
	assert.True(t, logger.HasEntry("INFO", "Process completed"))
}

func TestRun_NotAnArray(t *testing.T) {
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	err = Run(c, []byte(`{"date":"2024-01-01"}`), common.ExportOptions{Format: common.FormatJSON}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestCommandFlags(t *testing.T) {
	f := Cmd.Flags().Lookup("format")
	require.NotNil(t, f)
	assert.Equal(t, "f", f.Shorthand)
	assert.Equal(t, common.FormatJSON, f.DefValue)
	assert.NotNil(t, Cmd.Flags().Lookup("append-sheet"))
	assert.NotNil(t, Cmd.Flags().Lookup("no-summary"))
}
