// Package container wires the statement-parser components together from a
// configuration, so commands and the HTTP server receive them ready to use.
package container

import (
	"fmt"

	"fjacquet/statement-parser/internal/categorizer"
	"fjacquet/statement-parser/internal/config"
	"fjacquet/statement-parser/internal/export"
	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/pdfparser"
	"fjacquet/statement-parser/internal/processor"
	"fjacquet/statement-parser/internal/store"
)

// Container holds all application dependencies.
//
// Container is immutable after creation. Every component it hands out keeps
// no per-call state, so one container can serve concurrent requests.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.CategoryStore
	classifier *categorizer.Classifier
	parser     *pdfparser.Parser
	processor  *processor.Processor
	csvWriter  *export.CSVWriter
	xlsxWriter *export.XLSXWriter
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus adapter configured from cfg.Log.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)

	classifier, err := categorizer.NewClassifierFromStore(categoryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	parserOpts, err := ParserOptions(cfg)
	if err != nil {
		return nil, err
	}

	delimiter := []rune(cfg.CSV.Delimiter)
	if len(delimiter) != 1 {
		return nil, fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		store:      categoryStore,
		classifier: classifier,
		parser:     pdfparser.NewParser(logger, parserOpts),
		processor:  processor.NewProcessor(classifier, logger),
		csvWriter:  export.NewCSVWriter(delimiter[0], logger),
		xlsxWriter: export.NewXLSXWriter(cfg.Export.SheetName, logger),
	}

	logger.Debug("Container initialized",
		logging.Field{Key: "categories", Value: len(classifier.Rules())},
		logging.Field{Key: "fallback_policy", Value: cfg.PDF.FallbackPolicy})

	return c, nil
}

// ParserOptions maps the pdf configuration section to parser options.
// Zero values keep the parser defaults.
func ParserOptions(cfg *config.Config) (pdfparser.Options, error) {
	opts := pdfparser.DefaultOptions()

	if cfg.PDF.ColumnGap > 0 {
		opts.Layout.ColumnGap = cfg.PDF.ColumnGap
	}
	if cfg.PDF.WordGap > 0 {
		opts.Layout.WordGap = cfg.PDF.WordGap
	}
	if cfg.PDF.RowTolerance > 0 {
		opts.Layout.RowTolerance = cfg.PDF.RowTolerance
	}
	if cfg.PDF.MinTableColumns > 0 {
		opts.Layout.MinTableColumns = cfg.PDF.MinTableColumns
	}

	policy, err := pdfparser.FallbackPolicyByName(cfg.PDF.FallbackPolicy)
	if err != nil {
		return opts, fmt.Errorf("invalid pdf configuration: %w", err)
	}
	opts.Fallback = policy

	return opts, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category store backing the classifier.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetClassifier returns the keyword classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetParser returns the PDF statement parser.
func (c *Container) GetParser() *pdfparser.Parser {
	return c.parser
}

// GetProcessor returns the transaction processor.
func (c *Container) GetProcessor() *processor.Processor {
	return c.processor
}

// GetCSVWriter returns the CSV exporter.
func (c *Container) GetCSVWriter() *export.CSVWriter {
	return c.csvWriter
}

// GetXLSXWriter returns the spreadsheet exporter.
func (c *Container) GetXLSXWriter() *export.XLSXWriter {
	return c.xlsxWriter
}
