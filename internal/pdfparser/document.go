package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"fjacquet/statement-parser/internal/parsererror"
)

// Page gives access to the text and the detected tables of one page.
type Page interface {
	Text() (string, error)
	Tables() ([]Table, error)
}

// Document is an opened statement. Pages are indexed from 0.
type Document interface {
	NumPages() int
	Page(index int) (Page, error)
}

// PDFDocument is a Document backed by github.com/ledongthuc/pdf.
type PDFDocument struct {
	reader   *pdf.Reader
	closer   io.Closer
	numPages int
	layout   LayoutOptions
}

// OpenFile opens the PDF at path. The caller must Close the document.
func OpenFile(path string, layout LayoutOptions) (doc *PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "PDF", Msg: "cannot open document", Err: err}
	}

	return &PDFDocument{reader: r, closer: f, numPages: r.NumPage(), layout: layout}, nil
}

// OpenReader reads the whole PDF from r into memory and opens it.
func OpenReader(r io.Reader, layout LayoutOptions) (doc *PDFDocument, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF data: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	return &PDFDocument{reader: reader, numPages: reader.NumPage(), layout: layout}, nil
}

// NumPages returns the page count.
func (d *PDFDocument) NumPages() int {
	return d.numPages
}

// Page returns the page at index.
func (d *PDFDocument) Page(index int) (Page, error) {
	if index < 0 || index >= d.numPages {
		return nil, fmt.Errorf("page %d out of range [0,%d)", index, d.numPages)
	}
	p := d.reader.Page(index + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", index)
	}
	return &pdfPage{page: p, layout: d.layout}, nil
}

// Close releases the underlying file, if any.
func (d *PDFDocument) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

type pdfPage struct {
	page   pdf.Page
	layout LayoutOptions
	rows   []Row
	loaded bool
}

func (p *pdfPage) load() (rows []Row, err error) {
	if p.loaded {
		return p.rows, nil
	}

	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	content := p.page.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}

	p.rows = BuildRows(glyphs, p.layout)
	p.loaded = true
	return p.rows, nil
}

func (p *pdfPage) Text() (string, error) {
	rows, err := p.load()
	if err != nil {
		return "", err
	}
	return RowsText(rows), nil
}

func (p *pdfPage) Tables() ([]Table, error) {
	rows, err := p.load()
	if err != nil {
		return nil, err
	}
	return DetectTables(rows, p.layout.MinTableColumns), nil
}

// openFileDocument adapts OpenFile to the Parser's opener signature.
func openFileDocument(path string, layout LayoutOptions) (Document, io.Closer, error) {
	doc, err := OpenFile(path, layout)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc, nil
}

// statFile returns a clearer error than the PDF library for missing files.
func statFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
