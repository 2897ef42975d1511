package processor

import (
	"errors"
	"fmt"

	"fjacquet/statement-parser/internal/models"
)

var (
	// ErrInvalidAmount is returned for an amount that is not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidBalance is returned for a balance that is not a finite number.
	ErrInvalidBalance = errors.New("invalid balance")
	// ErrInvalidTransaction wraps a JSON element that is not a transaction object.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrUnexpected wraps a failure raised while validating one transaction.
	ErrUnexpected = errors.New("unexpected error")
)

// ErrorCollector accumulates validation errors for one batch. The zero
// value is ready to use; it is not safe for concurrent use.
type ErrorCollector struct {
	errors []models.ValidationError
}

// Add records err for the input at index. original is kept untouched.
func (c *ErrorCollector) Add(index int, err error, original any) {
	c.errors = append(c.errors, models.ValidationError{
		Index:       index,
		Error:       err.Error(),
		Transaction: original,
	})
}

// Errors returns the collected errors in insertion order, never nil.
func (c *ErrorCollector) Errors() []models.ValidationError {
	out := make([]models.ValidationError, len(c.errors))
	copy(out, c.errors)
	return out
}

// Len returns the number of collected errors.
func (c *ErrorCollector) Len() int {
	return len(c.errors)
}

func decodeError(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
}
