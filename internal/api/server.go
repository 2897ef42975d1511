// Package api exposes the parser and processor over HTTP using fiber.
package api

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// StatementParser turns an uploaded statement into a parse envelope.
type StatementParser interface {
	ParseReader(r io.Reader) models.ParseResult
}

// TransactionProcessor validates, cleans and categorizes raw transactions.
type TransactionProcessor interface {
	Process(txs []models.RawTransaction) models.ProcessResult
	ProcessJSON(data []byte) (models.ProcessResult, error)
}

// TransactionWriter renders processed transactions, e.g. as CSV.
type TransactionWriter interface {
	Write(out io.Writer, txs []models.ProcessedTransaction) error
}

// Options configures the HTTP server.
type Options struct {
	// BodyLimitMB caps request bodies, uploads included.
	BodyLimitMB int
}

const defaultBodyLimitMB = 20

// Server serves the statement API.
type Server struct {
	app       *fiber.App
	parser    StatementParser
	processor TransactionProcessor
	csv       TransactionWriter
	logger    logging.Logger
}

// NewServer builds a fiber app with every route registered. csv may be nil,
// in which case /api/convert only answers with JSON.
func NewServer(parser StatementParser, processor TransactionProcessor, csv TransactionWriter, logger logging.Logger, opts Options) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = defaultBodyLimitMB
	}

	s := &Server{
		parser:    parser,
		processor: processor,
		csv:       csv,
		logger:    logger,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             opts.BodyLimitMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")
	api.Get("/health", s.HandleHealth)
	api.Post("/parse", s.HandleParse)
	api.Post("/process", s.HandleProcess)
	api.Post("/convert", s.HandleConvert)

	return s
}

// App returns the underlying fiber app, mostly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called or the listener fails.
func (s *Server) Listen(addr string) error {
	s.logger.Info("Starting HTTP server", logging.Field{Key: "address", Value: addr})
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting up to timeout for open requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	s.logger.Debug("Handled request",
		logging.Field{Key: "method", Value: c.Method()},
		logging.Field{Key: "path", Value: c.Path()},
		logging.Field{Key: logging.FieldStatus, Value: status},
		logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})
	return err
}

// handleError renders errors that escaped a handler in the envelope shape.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.WithError(err).Error("Request failed",
			logging.Field{Key: "path", Value: c.Path()})
	}
	return c.Status(code).JSON(errorBody(err.Error()))
}
