package processor

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/parsererror"
)

const (
	maxDescriptionLength = 100
	ellipsis             = "..."
)

// Classifier assigns a category to a cleaned description.
type Classifier interface {
	Classify(description string) string
}

// Validator checks required fields and turns a raw candidate into a
// processed transaction.
type Validator struct {
	classifier Classifier
	logger     logging.Logger
}

// NewValidator creates a Validator.
func NewValidator(classifier Classifier, logger logging.Logger) *Validator {
	return &Validator{classifier: classifier, logger: logger}
}

// Validate cleans tx. index is the 0-based input position; it is carried in
// MissingFieldError and becomes row_num = index + 2.
//
// The type on the input is ignored and derived from the amount sign. Dates
// are normalized to ISO when they parse and kept as given otherwise.
func (v *Validator) Validate(index int, tx models.RawTransaction) (models.ProcessedTransaction, error) {
	date := strings.TrimSpace(tx.Date)
	switch {
	case date == "":
		return models.ProcessedTransaction{}, &parsererror.MissingFieldError{Index: index, Field: "date"}
	case strings.TrimSpace(tx.Description) == "":
		return models.ProcessedTransaction{}, &parsererror.MissingFieldError{Index: index, Field: "description"}
	case tx.Amount == nil:
		return models.ProcessedTransaction{}, &parsererror.MissingFieldError{Index: index, Field: "amount"}
	}

	amount := *tx.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.ProcessedTransaction{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	var balance *float64
	if tx.Balance != nil && *tx.Balance != 0 {
		b := *tx.Balance
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return models.ProcessedTransaction{}, fmt.Errorf("%w: %v", ErrInvalidBalance, b)
		}
		balance = &b
	}

	if iso, err := dateutils.NormalizeDate(date); err == nil {
		date = iso
	} else if v.logger != nil {
		v.logger.WithFields(
			logging.Field{Key: logging.FieldIndex, Value: index},
			logging.Field{Key: logging.FieldRawValue, Value: date},
		).Warn("Could not parse date")
	}

	description := CleanDescription(tx.Description)

	return models.ProcessedTransaction{
		Date:        date,
		Description: description,
		Amount:      math.Abs(amount),
		Type:        models.TypeFromAmount(amount),
		Balance:     balance,
		Category:    v.classifier.Classify(description),
		RawAmount:   amount,
		RowNum:      index + 2,
	}, nil
}

// CleanDescription collapses whitespace runs to one space, trims, and caps
// the result at 100 characters: 97 characters followed by "...".
func CleanDescription(description string) string {
	cleaned := strings.Join(strings.Fields(description), " ")
	if utf8.RuneCountInString(cleaned) <= maxDescriptionLength {
		return cleaned
	}
	runes := []rune(cleaned)
	return string(runes[:maxDescriptionLength-len(ellipsis)]) + ellipsis
}
