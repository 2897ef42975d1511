package models

// RawTransaction is an unvalidated candidate produced by document extraction,
// or supplied directly to the processor as JSON.
type RawTransaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      *float64        `json:"amount"`
	Balance     *float64        `json:"balance"`
	Type        TransactionType `json:"type,omitempty"`
}

// ProcessedTransaction is a transaction after validation, cleaning, sign
// normalization and categorization.
//
// Amount is always abs(RawAmount) and Type is DEBIT exactly when RawAmount < 0.
type ProcessedTransaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Balance     *float64        `json:"balance"`
	Category    string          `json:"category"`
	RawAmount   float64         `json:"raw_amount"`
	RowNum      int             `json:"row_num"`
}

// ValidationError records one input item that did not become a processed
// transaction. Transaction holds the original input untouched.
type ValidationError struct {
	Index       int    `json:"index"`
	Error       string `json:"error"`
	Transaction any    `json:"transaction"`
}

// Float returns a pointer to v. It keeps literals in tests and parsers short.
func Float(v float64) *float64 {
	return &v
}
