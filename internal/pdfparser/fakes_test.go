package pdfparser

import (
	"errors"
	"fmt"
)

type fakePage struct {
	text      string
	tables    []Table
	textErr   error
	tablesErr error
	panicMsg  string
}

func (p *fakePage) Text() (string, error) {
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.text, p.textErr
}

func (p *fakePage) Tables() ([]Table, error) {
	return p.tables, p.tablesErr
}

type fakeDocument struct {
	pages []*fakePage
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) Page(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	if d.pages[index] == nil {
		return nil, errors.New("nil page")
	}
	return d.pages[index], nil
}

func header() []string {
	return []string{"Date", "Description", "Amount", "Balance"}
}
