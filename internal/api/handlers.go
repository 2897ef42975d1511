package api

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

const formFileField = "file"

func errorBody(message string) fiber.Map {
	return fiber.Map{
		"status":  models.StatusError,
		"message": message,
	}
}

// HandleHealth reports liveness.
func (s *Server) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleParse extracts raw transactions from an uploaded PDF. A document that
// cannot be read is answered with 422 and the error envelope.
func (s *Server) HandleParse(c *fiber.Ctx) error {
	result, err := s.parseUpload(c)
	if err != nil {
		return err
	}
	return c.Status(parseStatus(result)).JSON(result)
}

// HandleProcess runs the processor over a JSON array of raw transactions.
// Invalid elements end up in validation_errors; only a body that is not a
// JSON array is rejected.
func (s *Server) HandleProcess(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON array of transactions")
	}

	result, err := s.processor.ProcessJSON(body)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(result)
}

// HandleConvert parses an uploaded PDF and processes the result in one call.
// With ?format=csv the processed transactions are returned as CSV.
func (s *Server) HandleConvert(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "json"))
	if format != "json" && format != "csv" {
		return fiber.NewError(fiber.StatusBadRequest, "format must be json or csv")
	}
	if format == "csv" && s.csv == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "CSV output is not configured")
	}

	parsed, err := s.parseUpload(c)
	if err != nil {
		return err
	}
	if parsed.Status == models.StatusError {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(parsed)
	}

	result := s.processor.Process(parsed.Transactions)

	if format == "csv" {
		var buf bytes.Buffer
		if err := s.csv.Write(&buf, result.Transactions); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	}
	return c.JSON(result)
}

func (s *Server) parseUpload(c *fiber.Ctx) (models.ParseResult, error) {
	header, err := c.FormFile(formFileField)
	if err != nil {
		return models.ParseResult{}, fiber.NewError(fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
	}

	src, err := header.Open()
	if err != nil {
		return models.ParseResult{}, fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			s.logger.WithError(cerr).Warn("Failed to close upload")
		}
	}()

	s.logger.Info("Received statement upload",
		logging.Field{Key: logging.FieldFile, Value: header.Filename},
		logging.Field{Key: "size", Value: header.Size})

	return s.parser.ParseReader(src), nil
}

func parseStatus(result models.ParseResult) int {
	if result.Status == models.StatusError {
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusOK
}
