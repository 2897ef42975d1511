package pdfparser

import (
	"testing"

	"fjacquet/statement-parser/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableStrategy_SkipsHeaderAndBadRows(t *testing.T) {
	content := PageContent{Tables: []Table{
		{
			{"15/01/2024", "looks like data but is the header", "1.00"},
			{"16/01/2024", "Coffee", "-4.50", "95.50"},
			{"17/01/2024", "short"},
			{"bad", "Row", "1.00"},
			{"18/01/2024", "Refund", "4.50", "100.00"},
		},
		{header()},
	}}

	logger := logging.NewMockLogger()
	txs := TableStrategy{}.Extract(content, logger)

	require.Len(t, txs, 2)
	assert.Equal(t, "Coffee", txs[0].Description)
	assert.Equal(t, "Refund", txs[1].Description)
	assert.True(t, logger.HasEntry("WARN", "Could not parse date"))
}

func TestTextStrategy(t *testing.T) {
	content := PageContent{Text: "01/03/2024 UBER TRIP 250.00 9,750.00"}
	txs := TextStrategy{}.Extract(content, logging.NewMockLogger())
	require.Len(t, txs, 1)
	assert.Equal(t, "UBER TRIP", txs[0].Description)
}

func TestStrategyNames(t *testing.T) {
	var s ExtractionStrategy = TableStrategy{}
	assert.Equal(t, "table", s.Name())
	s = TextStrategy{}
	assert.Equal(t, "text", s.Name())
}

func TestFallbackPolicies(t *testing.T) {
	tests := []struct {
		name       string
		hadTables  bool
		pageRows   int
		totalRows  int
		cumulative bool
		perPage    bool
	}{
		{"no tables", false, 0, 5, true, true},
		{"tables produced rows", true, 3, 3, false, false},
		{"tables empty, nothing so far", true, 0, 0, true, true},
		{"tables empty, earlier pages produced rows", true, 0, 7, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cumulative, CumulativeFallback(tt.hadTables, tt.pageRows, tt.totalRows))
			assert.Equal(t, tt.perPage, PerPageFallback(tt.hadTables, tt.pageRows, tt.totalRows))
		})
	}
}

func TestFallbackPolicyByName(t *testing.T) {
	for _, name := range []string{"", "cumulative", " CUMULATIVE "} {
		p, err := FallbackPolicyByName(name)
		require.NoError(t, err)
		assert.False(t, p(true, 0, 1))
	}

	p, err := FallbackPolicyByName("per_page")
	require.NoError(t, err)
	assert.True(t, p(true, 0, 1))

	_, err = FallbackPolicyByName("always")
	assert.Error(t, err)
}
