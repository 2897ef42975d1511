package pdfparser

import (
	"fmt"
	"strings"

	"fjacquet/statement-parser/internal/logging"
	"fjacquet/statement-parser/internal/models"
)

// bankMarkers is checked in order; the first marker found wins.
var bankMarkers = []struct {
	marker string
	bank   models.BankType
}{
	{"HDFC", models.BankHDFC},
	{"ICICI", models.BankICICI},
	{"SBI", models.BankSBI},
}

// DetectBankType looks for a bank marker in the first page's text. Any
// failure to read that page yields GENERIC.
func DetectBankType(doc Document, logger logging.Logger) models.BankType {
	text, err := firstPageText(doc)
	if err != nil {
		logger.WithError(err).Warn("Could not detect bank type")
		return models.BankGeneric
	}

	bank := BankTypeFromText(text)
	logger.WithField(logging.FieldBankType, string(bank)).Info("Detected bank type")
	return bank
}

// BankTypeFromText returns the first bank whose marker appears in text,
// ignoring case.
func BankTypeFromText(text string) models.BankType {
	upper := strings.ToUpper(text)
	for _, m := range bankMarkers {
		if strings.Contains(upper, m.marker) {
			return m.bank
		}
	}
	return models.BankGeneric
}

func firstPageText(doc Document) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	if doc.NumPages() == 0 {
		return "", fmt.Errorf("document has no pages")
	}
	page, err := doc.Page(0)
	if err != nil {
		return "", err
	}
	text, err = page.Text()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("first page has no text")
	}
	return text, nil
}
