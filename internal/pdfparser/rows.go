package pdfparser

import (
	"regexp"
	"strings"

	"fjacquet/statement-parser/internal/currencyutils"
	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"
)

// Row sources reported in RowError.
const (
	SourceTable = "table"
	SourceText  = "text"
)

// minRowCells is the number of cells a table row needs: date, description
// and amount. A fourth cell is the balance.
const minRowCells = 3

// textTransactionPattern matches "date description amount balance" anywhere
// in page text.
var textTransactionPattern = regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\s+(.+?)\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`)

// ParseTableRow turns the cells of one table row into a candidate. Cells are
// date, description, amount and an optional balance. A blank cell counts as
// missing. Rows whose amount is zero are rejected.
func ParseTableRow(cells []string) (models.RawTransaction, error) {
	if len(cells) < minRowCells {
		return models.RawTransaction{}, &parsererror.RowError{Source: SourceTable, Reason: "too few cells"}
	}

	dateStr := strings.TrimSpace(cells[0])
	description := strings.TrimSpace(cells[1])
	amountStr := strings.TrimSpace(cells[2])
	balanceStr := ""
	if len(cells) > 3 {
		balanceStr = strings.TrimSpace(cells[3])
	}

	switch {
	case dateStr == "":
		return models.RawTransaction{}, &parsererror.RowError{Source: SourceTable, Reason: "missing date"}
	case description == "":
		return models.RawTransaction{}, &parsererror.RowError{Source: SourceTable, Reason: "missing description"}
	case amountStr == "":
		return models.RawTransaction{}, &parsererror.RowError{Source: SourceTable, Reason: "missing amount"}
	}

	date, err := dateutils.NormalizeDate(dateStr)
	if err != nil {
		return models.RawTransaction{}, fieldError(SourceTable, "date", dateStr, err)
	}

	amount, err := currencyutils.NormalizeAmount(amountStr)
	if err != nil {
		return models.RawTransaction{}, fieldError(SourceTable, "amount", amountStr, err)
	}
	if amount == 0 {
		return models.RawTransaction{}, &parsererror.RowError{Source: SourceTable, Reason: "zero amount"}
	}

	return models.RawTransaction{
		Date:        date,
		Description: description,
		Amount:      models.Float(amount),
		Balance:     optionalAmount(balanceStr),
		Type:        models.TypeFromAmount(amount),
	}, nil
}

// ParseTextTransactions scans page text for transaction lines and returns
// the candidates whose date parsed and whose amount is non-zero.
func ParseTextTransactions(text string) []models.RawTransaction {
	txs, _ := scanText(text)
	return txs
}

// scanText is ParseTextTransactions that also reports rejected matches.
func scanText(text string) ([]models.RawTransaction, []error) {
	var txs []models.RawTransaction
	var rejected []error

	for _, m := range textTransactionPattern.FindAllStringSubmatch(text, -1) {
		dateStr, description, amountStr, balanceStr := m[1], strings.TrimSpace(m[2]), m[3], m[4]

		date, err := dateutils.NormalizeDate(dateStr)
		if err != nil {
			rejected = append(rejected, fieldError(SourceText, "date", dateStr, err))
			continue
		}

		amount, err := currencyutils.NormalizeAmount(amountStr)
		if err != nil {
			rejected = append(rejected, fieldError(SourceText, "amount", amountStr, err))
			continue
		}
		if amount == 0 {
			rejected = append(rejected, &parsererror.RowError{Source: SourceText, Reason: "zero amount"})
			continue
		}

		// Text lines carry no sign; a DR marker anywhere in the description
		// flags a debit.
		txType := models.TransactionTypeCredit
		if strings.Contains(strings.ToUpper(description), "DR") {
			txType = models.TransactionTypeDebit
		}

		txs = append(txs, models.RawTransaction{
			Date:        date,
			Description: description,
			Amount:      models.Float(amount),
			Balance:     optionalAmount(balanceStr),
			Type:        txType,
		})
	}

	return txs, rejected
}

func fieldError(source, field, value string, err error) *parsererror.RowError {
	return &parsererror.RowError{
		Source: source,
		Reason: "unparseable " + field,
		Err:    &parsererror.ParseError{Parser: "PDF", Field: field, Value: value, Err: err},
	}
}

// optionalAmount parses a balance token; blank or unparseable gives nil.
func optionalAmount(raw string) *float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := currencyutils.NormalizeAmount(raw)
	if err != nil {
		return nil
	}
	return models.Float(v)
}
