// Package processor validates, cleans and categorizes raw transaction
// candidates and summarizes the result.
package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"

	"github.com/google/uuid"
)

// Processor runs the validation stage over a batch. It keeps no per-call
// state and is safe for concurrent use.
type Processor struct {
	validator *Validator
	logger    logging.Logger
}

// NewProcessor creates a Processor that categorizes with classifier.
func NewProcessor(classifier Classifier, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		validator: NewValidator(classifier, logger),
		logger:    logger,
	}
}

// Process validates every candidate. Failures become validation errors with
// the input index; the batch always completes.
func (p *Processor) Process(txs []models.RawTransaction) models.ProcessResult {
	items := make([]item, len(txs))
	for i, tx := range txs {
		items[i] = item{tx: tx, original: tx}
	}
	return p.run(items)
}

// ProcessJSON decodes a JSON array of transaction objects and processes it.
// Only a body that is not a JSON array is an error; elements that cannot be
// decoded become validation errors carrying the raw element.
func (p *Processor) ProcessJSON(data []byte) (models.ProcessResult, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return models.ProcessResult{}, fmt.Errorf("expected a JSON array of transactions: %w", err)
	}

	items := make([]item, len(elements))
	for i, raw := range elements {
		tx, err := decodeTransaction(raw)
		items[i] = item{tx: tx, original: raw, err: err}
	}
	return p.run(items), nil
}

type item struct {
	tx       models.RawTransaction
	original any
	err      error
}

func (p *Processor) run(items []item) models.ProcessResult {
	runID := uuid.NewString()
	logger := p.logger.WithField(logging.FieldRunID, runID)

	processed := make([]models.ProcessedTransaction, 0, len(items))
	var collector ErrorCollector

	for idx, it := range items {
		err := it.err
		if err == nil {
			var tx models.ProcessedTransaction
			tx, err = p.validate(idx, it.tx)
			if err == nil {
				processed = append(processed, tx)
				continue
			}
		}

		collector.Add(idx, err, it.original)
		logger.WithError(err).WithField(logging.FieldIndex, idx).Warn("Error processing transaction")
	}

	summary, err := Summarize(processed)
	if err != nil {
		logger.WithError(err).Error("Error generating summary")
		summary = models.Summary{}
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(processed)},
		logging.Field{Key: logging.FieldErrorCount, Value: collector.Len()},
	).Info("Processed transactions")

	return models.ProcessResult{
		RunID:            runID,
		Status:           models.StatusSuccess,
		Transactions:     processed,
		TotalProcessed:   len(processed),
		TotalErrors:      collector.Len(),
		ValidationErrors: collector.Errors(),
		Summary:          summary,
	}
}

// validate runs the validator for one item. A panic, e.g. from the
// classifier, fails only that item.
func (p *Processor) validate(idx int, tx models.RawTransaction) (out models.ProcessedTransaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = models.ProcessedTransaction{}, fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()
	return p.validator.Validate(idx, tx)
}

// jsonTransaction accepts amounts and balances as JSON numbers or numeric
// strings. type is derived from the amount, so any JSON value is accepted.
type jsonTransaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Balance     json.RawMessage `json:"balance"`
	Type        json.RawMessage `json:"type"`
}

func decodeTransaction(raw json.RawMessage) (models.RawTransaction, error) {
	var jt jsonTransaction
	if err := json.Unmarshal(raw, &jt); err != nil {
		return models.RawTransaction{}, decodeError(err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.RawTransaction{}, decodeError(fmt.Errorf("null element"))
	}

	amount, err := coerceFloat(jt.Amount)
	if err != nil {
		return models.RawTransaction{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	balance, err := coerceFloat(jt.Balance)
	if err != nil {
		return models.RawTransaction{}, fmt.Errorf("%w: %v", ErrInvalidBalance, err)
	}

	return models.RawTransaction{
		Date:        jt.Date,
		Description: jt.Description,
		Amount:      amount,
		Balance:     balance,
		Type:        inputType(jt.Type),
	}, nil
}

// coerceFloat reads a JSON number or numeric string. Absent, null and empty
// string values give nil.
func coerceFloat(raw json.RawMessage) (*float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return &n, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("not a number: %s", trimmed)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("could not convert %q to a number", s)
	}
	return &n, nil
}

// inputType keeps a string type for reference; other JSON values are dropped.
func inputType(raw json.RawMessage) models.TransactionType {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return models.TransactionType(s)
}
