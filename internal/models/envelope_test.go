package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromAmount(t *testing.T) {
	assert.Equal(t, TransactionTypeDebit, TypeFromAmount(-0.01))
	assert.Equal(t, TransactionTypeCredit, TypeFromAmount(0))
	assert.Equal(t, TransactionTypeCredit, TypeFromAmount(12.5))
}

func TestProcessResult_JSONShape(t *testing.T) {
	result := ProcessResult{
		Status:           StatusSuccess,
		Transactions:     []ProcessedTransaction{},
		ValidationErrors: []ValidationError{},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["transactions"])
	assert.Equal(t, []any{}, decoded["validation_errors"])

	summary := decoded["summary"].(map[string]any)
	assert.Nil(t, summary["opening_balance"])
	assert.Nil(t, summary["closing_balance"])
	assert.Equal(t, float64(0), summary["net_amount"])
}

func TestParseResult_JSONShape(t *testing.T) {
	result := ParseResult{
		Status:       StatusError,
		Message:      "Failed to parse PDF: boom",
		Transactions: []RawTransaction{},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "error", decoded["status"])
	assert.Equal(t, "Failed to parse PDF: boom", decoded["message"])
	assert.Contains(t, decoded, "statement_date_range")
	assert.Nil(t, decoded["statement_date_range"])
	assert.NotContains(t, decoded, "bank_type")
}

func TestRawTransaction_NullAmountDecodes(t *testing.T) {
	var tx RawTransaction
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","description":"x","amount":null}`), &tx))
	assert.Nil(t, tx.Amount)
	assert.Nil(t, tx.Balance)

	require.NoError(t, json.Unmarshal([]byte(`{"amount":-500,"balance":1500}`), &tx))
	require.NotNil(t, tx.Amount)
	assert.Equal(t, -500.0, *tx.Amount)
	assert.Equal(t, 1500.0, *tx.Balance)
}
