// Package dateutils normalizes statement date tokens to ISO dates.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayoutISO is the canonical output layout.
const DateLayoutISO = "2006-01-02"

// ErrUnparseableDate is returned when no layout matches a token.
var ErrUnparseableDate = errors.New("unparseable date")

// DateLayouts is tried in order and the first layout that consumes the whole
// token wins. Numeric day-first layouts come before month-first ones, so an
// ambiguous token such as 03-04-2024 resolves to 3 April. Keep the order.
var DateLayouts = []string{
	"2-1-2006",       // DD-MM-YYYY
	"2/1/2006",       // DD/MM/YYYY
	"1-2-2006",       // MM-DD-YYYY
	"1/2/2006",       // MM/DD/YYYY
	"2006-1-2",       // YYYY-MM-DD
	"2006/1/2",       // YYYY/MM/DD
	"2-Jan-2006",     // DD-Mon-YYYY
	"2/Jan/2006",     // DD/Mon/YYYY
	"Jan-2-2006",     // Mon-DD-YYYY
	"Jan/2/2006",     // Mon/DD/YYYY
	"2-January-2006", // DD-Month-YYYY
	"2/January/2006", // DD/Month/YYYY
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeDate parses raw against DateLayouts and returns it as YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	t, _, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ParseDate returns the parsed time and the layout that matched.
func ParseDate(raw string) (time.Time, string, error) {
	cleaned := CleanDateString(raw)
	if cleaned == "" {
		return time.Time{}, "", fmt.Errorf("%w: empty token", ErrUnparseableDate)
	}

	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims the token and collapses inner whitespace runs.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
