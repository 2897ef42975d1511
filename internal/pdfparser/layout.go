package pdfparser

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// LayoutOptions control how glyph positions are turned into rows and cells.
// Distances are in PDF user-space units (points).
type LayoutOptions struct {
	// ColumnGap is the horizontal gap above which two glyphs belong to
	// different cells.
	ColumnGap float64
	// WordGap is the horizontal gap above which a space is inserted
	// between two glyphs of the same cell.
	WordGap float64
	// RowTolerance is the maximum vertical distance between glyphs of the
	// same row.
	RowTolerance float64
	// MinTableColumns is the number of cells a row needs to count as a
	// table row.
	MinTableColumns int
}

// DefaultLayoutOptions returns the layout heuristics used when nothing is
// configured.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		ColumnGap:       10,
		WordGap:         1,
		RowTolerance:    2,
		MinTableColumns: 3,
	}
}

// Glyph is one positioned text fragment as reported by the PDF library.
type Glyph struct {
	X, Y     float64
	W        float64
	FontSize float64
	S        string
}

func (g Glyph) width() float64 {
	if g.W > 0 {
		return g.W
	}
	if g.FontSize > 0 {
		return 0.5 * g.FontSize * float64(utf8.RuneCountInString(g.S))
	}
	return 0
}

// Row is one visual line of a page split into cells.
type Row struct {
	Y     float64
	Cells []string
}

// Table is a block of consecutive rows with enough cells. Row 0 is the
// header. An empty cell is a missing value.
type Table [][]string

// BuildRows groups glyphs into rows, top of the page first, and splits each
// row into cells on wide horizontal gaps. Whitespace glyphs only separate
// words; the gap they span still counts toward the column gap.
//
// glyphs are expected in content-stream order, see advanceZeroWidth.
func BuildRows(glyphs []Glyph, opts LayoutOptions) []Row {
	visible := make([]Glyph, 0, len(glyphs))
	for _, g := range advanceZeroWidth(glyphs, opts.RowTolerance) {
		if strings.TrimSpace(g.S) != "" {
			visible = append(visible, g)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	// PDF y grows upwards.
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Y > visible[j].Y
	})

	var rows []Row
	start := 0
	for i := 1; i <= len(visible); i++ {
		if i < len(visible) && visible[start].Y-visible[i].Y <= opts.RowTolerance {
			continue
		}
		line := visible[start:i]
		sort.SliceStable(line, func(a, b int) bool {
			return line[a].X < line[b].X
		})
		if cells := splitCells(line, opts); len(cells) > 0 {
			rows = append(rows, Row{Y: line[0].Y, Cells: cells})
		}
		start = i
	}

	return rows
}

// advanceZeroWidth lays out runs of glyphs drawn with a font that has no
// width table. The PDF library reports such glyphs with W=0 and never moves
// the pen, so a whole text run sits on one X. Each glyph of the run is
// placed after its predecessor using the estimated width.
func advanceZeroWidth(glyphs []Glyph, rowTolerance float64) []Glyph {
	const samePos = 0.01

	out := make([]Glyph, len(glyphs))
	copy(out, glyphs)
	for i := 1; i < len(out); i++ {
		prev, cur := glyphs[i-1], glyphs[i]
		if cur.W != 0 || prev.W != 0 {
			continue
		}
		if math.Abs(cur.X-prev.X) > samePos || math.Abs(cur.Y-prev.Y) > rowTolerance {
			continue
		}
		out[i].X = out[i-1].X + out[i-1].width()
	}
	return out
}

func splitCells(line []Glyph, opts LayoutOptions) []string {
	var cells []string
	var cur strings.Builder
	lastEnd := math.Inf(-1)

	flush := func() {
		if cell := strings.TrimSpace(cur.String()); cell != "" {
			cells = append(cells, cell)
		}
		cur.Reset()
	}

	for _, g := range line {
		if !math.IsInf(lastEnd, -1) {
			gap := g.X - lastEnd
			switch {
			case gap > opts.ColumnGap:
				flush()
			case gap > opts.WordGap:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(g.S)
		lastEnd = math.Max(lastEnd, g.X+g.width())
	}
	flush()

	return cells
}

// DetectTables returns every run of at least two consecutive rows that have
// minColumns or more cells.
func DetectTables(rows []Row, minColumns int) []Table {
	var tables []Table
	var cur Table

	flush := func() {
		if len(cur) >= 2 {
			tables = append(tables, cur)
		}
		cur = nil
	}

	for _, r := range rows {
		if len(r.Cells) >= minColumns {
			cur = append(cur, append([]string(nil), r.Cells...))
			continue
		}
		flush()
	}
	flush()

	return tables
}

// RowsText renders rows as page text, one line per row with cells separated
// by a single space.
func RowsText(rows []Row) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, strings.Join(r.Cells, " "))
	}
	return strings.Join(lines, "\n")
}
