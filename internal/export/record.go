// Package export writes processed transactions and summaries to CSV and
// XLSX files.
package export

import (
	"strconv"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/models"
)

// Record is the CSV form of a processed transaction. Amounts are rendered
// with two decimals.
type Record struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Type        string `csv:"type"`
	Balance     string `csv:"balance"`
	Category    string `csv:"category"`
	RawAmount   string `csv:"raw_amount"`
	RowNum      int    `csv:"row_num"`
}

// Columns is the header row written by both writers.
var Columns = []string{"date", "description", "amount", "type", "balance", "category", "raw_amount", "row_num"}

// NewRecord flattens tx.
func NewRecord(tx models.ProcessedTransaction) Record {
	balance := ""
	if tx.Balance != nil {
		balance = formatAmount(*tx.Balance)
	}
	return Record{
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      formatAmount(tx.Amount),
		Type:        string(tx.Type),
		Balance:     balance,
		Category:    tx.Category,
		RawAmount:   formatAmount(tx.RawAmount),
		RowNum:      tx.RowNum,
	}
}

func formatAmount(v float64) string {
	d, err := currencyutils.FromFloat(v)
	if err != nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return currencyutils.FormatAmount(d, "")
}

func records(txs []models.ProcessedTransaction) []Record {
	out := make([]Record, len(txs))
	for i, tx := range txs {
		out[i] = NewRecord(tx)
	}
	return out
}

// summaryRows renders a summary as label/value pairs.
func summaryRows(s models.Summary) [][]interface{} {
	balance := func(b *float64) interface{} {
		if b == nil {
			return ""
		}
		return *b
	}
	return [][]interface{}{
		{"total_transactions", s.TotalTransactions},
		{"total_credits", currencyutils.RoundAmount(s.TotalCredits)},
		{"total_debits", currencyutils.RoundAmount(s.TotalDebits)},
		{"net_amount", currencyutils.RoundAmount(s.NetAmount)},
		{"opening_balance", balance(s.OpeningBalance)},
		{"closing_balance", balance(s.ClosingBalance)},
	}
}
