package processor

import (
	"errors"
	"math"
	"testing"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credit(amount float64, balance *float64) models.ProcessedTransaction {
	return models.ProcessedTransaction{Amount: amount, RawAmount: amount, Type: models.TransactionTypeCredit, Balance: balance}
}

func debit(amount float64, balance *float64) models.ProcessedTransaction {
	return models.ProcessedTransaction{Amount: amount, RawAmount: -amount, Type: models.TransactionTypeDebit, Balance: balance}
}

func TestSummarize_Empty(t *testing.T) {
	s, err := Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, models.Summary{}, s)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]models.ProcessedTransaction{
		credit(0.1, models.Float(100.1)),
		credit(0.2, nil),
		debit(0.3, nil),
		debit(10, models.Float(90)),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, s.TotalTransactions)
	assert.Equal(t, 0.3, s.TotalCredits)
	assert.Equal(t, 10.3, s.TotalDebits)
	assert.Equal(t, -10.0, s.NetAmount)
	assert.Equal(t, 100.1, *s.OpeningBalance)
	assert.Equal(t, 90.0, *s.ClosingBalance)
}

func TestSummarize_ZeroBalancesAreAbsent(t *testing.T) {
	s, err := Summarize([]models.ProcessedTransaction{
		credit(1, models.Float(0)),
		credit(1, models.Float(0)),
	})
	require.NoError(t, err)
	assert.Nil(t, s.OpeningBalance)
	assert.Nil(t, s.ClosingBalance)
}

func TestSummarize_NonFinite(t *testing.T) {
	_, err := Summarize([]models.ProcessedTransaction{credit(math.Inf(1), nil)})
	assert.True(t, errors.Is(err, currencyutils.ErrNonFiniteAmount))
}
