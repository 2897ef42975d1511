package models

// Summary aggregates a processed batch.
type Summary struct {
	TotalTransactions int      `json:"total_transactions"`
	TotalCredits      float64  `json:"total_credits"`
	TotalDebits       float64  `json:"total_debits"`
	NetAmount         float64  `json:"net_amount"`
	OpeningBalance    *float64 `json:"opening_balance"`
	ClosingBalance    *float64 `json:"closing_balance"`
}

// DateRange is the statement period. It is not populated yet and always
// serializes as null inside ParseResult.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseResult is the PDF parser output envelope.
type ParseResult struct {
	RunID              string           `json:"run_id"`
	Status             string           `json:"status"`
	Transactions       []RawTransaction `json:"transactions"`
	BankType           BankType         `json:"bank_type,omitempty"`
	TotalTransactions  int              `json:"total_transactions"`
	StatementDateRange *DateRange       `json:"statement_date_range"`
	Message            string           `json:"message,omitempty"`
}

// ProcessResult is the data processor output envelope.
type ProcessResult struct {
	RunID            string                 `json:"run_id"`
	Status           string                 `json:"status"`
	Transactions     []ProcessedTransaction `json:"transactions"`
	TotalProcessed   int                    `json:"total_processed"`
	TotalErrors      int                    `json:"total_errors"`
	ValidationErrors []ValidationError      `json:"validation_errors"`
	Summary          Summary                `json:"summary"`
}
