package pdfparser

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/statement-parser/internal/dateutils"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// PageContent is what one page offers to the extraction strategies.
type PageContent struct {
	Index  int
	Text   string
	Tables []Table
}

// ExtractionStrategy turns page content into transaction candidates.
// Rejected rows are logged and dropped.
type ExtractionStrategy interface {
	Name() string
	Extract(content PageContent, logger logging.Logger) []models.RawTransaction
}

// TableStrategy reads candidates from detected tables, skipping each
// table's header row.
type TableStrategy struct{}

// Name returns the strategy name used in logs.
func (TableStrategy) Name() string { return "table" }

// Extract implements ExtractionStrategy.
func (s TableStrategy) Extract(content PageContent, logger logging.Logger) []models.RawTransaction {
	var out []models.RawTransaction
	for ti, table := range content.Tables {
		if len(table) < 2 {
			continue
		}
		for _, cells := range table[1:] {
			if len(cells) < minRowCells {
				continue
			}
			tx, err := ParseTableRow(cells)
			if err != nil {
				logRejected(logger.WithFields(
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: logging.FieldTable, Value: ti},
				), err)
				continue
			}
			out = append(out, tx)
		}
	}
	return out
}

// TextStrategy matches transaction lines in page text.
type TextStrategy struct{}

// Name returns the strategy name used in logs.
func (TextStrategy) Name() string { return "text" }

// Extract implements ExtractionStrategy.
func (s TextStrategy) Extract(content PageContent, logger logging.Logger) []models.RawTransaction {
	txs, rejected := scanText(content.Text)
	for _, err := range rejected {
		logRejected(logger.WithField(logging.FieldStrategy, s.Name()), err)
	}
	return txs
}

func logRejected(logger logging.Logger, err error) {
	if errors.Is(err, dateutils.ErrUnparseableDate) {
		logger.WithError(err).Warn("Could not parse date")
		return
	}
	logger.WithError(err).Debug("Row rejected")
}

// FallbackPolicy decides whether the text strategy also runs on a page.
// pageHadTables reports whether tables were detected on the page, pageRows
// is the number of candidates its tables produced and totalRows the number
// accumulated across the document including this page.
type FallbackPolicy func(pageHadTables bool, pageRows, totalRows int) bool

// CumulativeFallback runs the text strategy when the page had no tables or
// nothing has been extracted from the document yet. Once any page produced a
// row, later pages whose tables yield nothing are not scanned as text.
func CumulativeFallback(pageHadTables bool, _, totalRows int) bool {
	return !pageHadTables || totalRows == 0
}

// PerPageFallback runs the text strategy whenever the page's own tables
// produced nothing.
func PerPageFallback(pageHadTables bool, pageRows, _ int) bool {
	return !pageHadTables || pageRows == 0
}

// Fallback policy names accepted in configuration.
const (
	FallbackCumulative = "cumulative"
	FallbackPerPage    = "per_page"
)

// FallbackPolicyByName maps a configuration value to a policy. An empty name
// selects the cumulative policy.
func FallbackPolicyByName(name string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FallbackCumulative:
		return CumulativeFallback, nil
	case FallbackPerPage:
		return PerPageFallback, nil
	default:
		return nil, fmt.Errorf("unknown fallback policy %q", name)
	}
}
