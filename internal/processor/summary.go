package processor

import (
	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/models"

	"github.com/shopspring/decimal"
)

// Summarize totals a processed batch. Credits and debits are summed
// exactly and rounded to two places. Opening and closing balances come from
// the first and last transaction when set and non-zero.
func Summarize(txs []models.ProcessedTransaction) (models.Summary, error) {
	if len(txs) == 0 {
		return models.Summary{}, nil
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		amount, err := currencyutils.FromFloat(tx.Amount)
		if err != nil {
			return models.Summary{}, err
		}
		if tx.Type == models.TransactionTypeDebit {
			debits = debits.Add(amount)
		} else {
			credits = credits.Add(amount)
		}
	}

	return models.Summary{
		TotalTransactions: len(txs),
		TotalCredits:      credits.RoundBank(currencyutils.AmountPlaces).InexactFloat64(),
		TotalDebits:       debits.RoundBank(currencyutils.AmountPlaces).InexactFloat64(),
		NetAmount:         credits.Sub(debits).RoundBank(currencyutils.AmountPlaces).InexactFloat64(),
		OpeningBalance:    truthyBalance(txs[0].Balance),
		ClosingBalance:    truthyBalance(txs[len(txs)-1].Balance),
	}, nil
}

func truthyBalance(b *float64) *float64 {
	if b == nil || *b == 0 {
		return nil
	}
	v := *b
	return &v
}
