// Package pdfparser extracts raw transaction candidates from PDF bank
// statements.
//
// Each page is read table-first: rows of detected tables are parsed, then
// the page text is scanned with a line pattern when the fallback policy asks
// for it. Row failures are dropped, page failures skip the page, and a
// document that cannot be opened yields an error envelope.
package pdfparser

import (
	"fmt"
	"io"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"

	"github.com/google/uuid"
)

// Options configures a Parser.
type Options struct {
	Layout   LayoutOptions
	Fallback FallbackPolicy
}

// DefaultOptions returns the default layout heuristics and the cumulative
// fallback policy.
func DefaultOptions() Options {
	return Options{
		Layout:   DefaultLayoutOptions(),
		Fallback: CumulativeFallback,
	}
}

// Parser extracts transactions from statements. It keeps no per-call state
// and is safe for concurrent use.
type Parser struct {
	logger   logging.Logger
	opts     Options
	table    ExtractionStrategy
	text     ExtractionStrategy
	openFile func(path string, layout LayoutOptions) (Document, io.Closer, error)
}

// NewParser creates a Parser. Zero-valued options fall back to defaults.
func NewParser(logger logging.Logger, opts Options) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	defaults := DefaultOptions()
	if opts.Fallback == nil {
		opts.Fallback = defaults.Fallback
	}
	if opts.Layout.ColumnGap <= 0 {
		opts.Layout.ColumnGap = defaults.Layout.ColumnGap
	}
	if opts.Layout.WordGap <= 0 {
		opts.Layout.WordGap = defaults.Layout.WordGap
	}
	if opts.Layout.RowTolerance <= 0 {
		opts.Layout.RowTolerance = defaults.Layout.RowTolerance
	}
	if opts.Layout.MinTableColumns <= 0 {
		opts.Layout.MinTableColumns = defaults.Layout.MinTableColumns
	}

	return &Parser{
		logger:   logger,
		opts:     opts,
		table:    TableStrategy{},
		text:     TextStrategy{},
		openFile: openFileDocument,
	}
}

// ParseFile parses the PDF at path.
func (p *Parser) ParseFile(path string) models.ParseResult {
	logger := p.logger.WithField(logging.FieldFile, path)

	if err := statFile(path); err != nil {
		return p.errorResult(logger, err)
	}

	doc, closer, err := p.openFile(path, p.opts.Layout)
	if err != nil {
		return p.errorResult(logger, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close PDF file")
		}
	}()

	return p.parse(doc, logger)
}

// ParseReader parses a PDF read fully from r.
func (p *Parser) ParseReader(r io.Reader) models.ParseResult {
	doc, err := OpenReader(r, p.opts.Layout)
	if err != nil {
		return p.errorResult(p.logger, err)
	}
	return p.parse(doc, p.logger)
}

// ParseDocument parses an already opened document.
func (p *Parser) ParseDocument(doc Document) models.ParseResult {
	return p.parse(doc, p.logger)
}

func (p *Parser) parse(doc Document, logger logging.Logger) models.ParseResult {
	runID := uuid.NewString()
	logger = logger.WithField(logging.FieldRunID, runID)

	numPages := doc.NumPages()
	logger.WithField(logging.FieldCount, numPages).Info("Opened PDF")

	bank := DetectBankType(doc, logger)

	transactions := make([]models.RawTransaction, 0)
	for i := 0; i < numPages; i++ {
		pageLogger := logger.WithField(logging.FieldPage, i)
		pageTxs, err := p.extractPage(doc, i, len(transactions), pageLogger)
		if err != nil {
			pageLogger.WithError(err).Warn("Error extracting from page")
			continue
		}
		transactions = append(transactions, pageTxs...)
	}

	logger.WithField(logging.FieldCount, len(transactions)).Info("Extracted transactions")

	return models.ParseResult{
		RunID:              runID,
		Status:             models.StatusSuccess,
		Transactions:       transactions,
		BankType:           bank,
		TotalTransactions:  len(transactions),
		StatementDateRange: nil,
	}
}

// extractPage runs the table strategy and, when the fallback policy says so,
// the text strategy over one page. Any read failure or panic aborts the page.
func (p *Parser) extractPage(doc Document, index, accumulated int, logger logging.Logger) (txs []models.RawTransaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			txs, err = nil, fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	page, err := doc.Page(index)
	if err != nil {
		return nil, err
	}
	text, err := page.Text()
	if err != nil {
		return nil, fmt.Errorf("text extraction: %w", err)
	}
	tables, err := page.Tables()
	if err != nil {
		return nil, fmt.Errorf("table extraction: %w", err)
	}

	content := PageContent{Index: index, Text: text, Tables: tables}

	txs = p.table.Extract(content, logger)
	if p.opts.Fallback(len(tables) > 0, len(txs), accumulated+len(txs)) {
		txs = append(txs, p.text.Extract(content, logger)...)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldTable, Value: len(tables)},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
	).Debug("Extracted page")

	return txs, nil
}

func (p *Parser) errorResult(logger logging.Logger, err error) models.ParseResult {
	logger.WithError(err).Error("Error parsing PDF")
	return models.ParseResult{
		RunID:        uuid.NewString(),
		Status:       models.StatusError,
		Message:      fmt.Sprintf("Failed to parse PDF: %v", err),
		Transactions: make([]models.RawTransaction, 0),
	}
}
