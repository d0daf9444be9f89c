package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Tolerances used for direct text extraction when none are configured.
const (
	DefaultXTolerance = 2.0
	DefaultYTolerance = 3.0
)

// TextOptions controls how a page's glyphs are assembled into text.
type TextOptions struct {
	XTolerance float64 // max horizontal gap between glyphs of the same word
	YTolerance float64 // max vertical offset between glyphs of the same line
	Layout     bool    // keep relative horizontal/vertical spacing
}

// PDFOpener opens raw PDF bytes as a document.
type PDFOpener interface {
	Open(data []byte) (PDFDocument, error)
}

// PDFDocument is an opened PDF whose pages can be read in order.
type PDFDocument interface {
	NumPages() int
	// PageText returns the text of the zero-based page, or "" if it has none.
	PageText(index int, opts TextOptions) (string, error)
}

// PDFExtractor pulls embedded text out of a PDF, page by page.
type PDFExtractor struct {
	opener PDFOpener
	opts   TextOptions
}

// NewPDFExtractor creates a PDFExtractor that reads pages in layout mode with
// the given tolerances.
func NewPDFExtractor(opener PDFOpener, xTolerance, yTolerance float64) *PDFExtractor {
	return &PDFExtractor{
		opener: opener,
		opts: TextOptions{
			XTolerance: xTolerance,
			YTolerance: yTolerance,
			Layout:     true,
		},
	}
}

// ExtractText returns the text of every page in order, each followed by a
// newline. Pages without text contribute nothing.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	doc, err := e.opener.Open(data)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.PageText(i, e.opts)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i+1, err)
		}
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// LedongthucEngine implements PDFOpener with github.com/ledongthuc/pdf.
// Documents are read straight from memory; nothing touches the disk.
type LedongthucEngine struct{}

// NewLedongthucEngine creates a new LedongthucEngine.
func NewLedongthucEngine() *LedongthucEngine {
	return &LedongthucEngine{}
}

// Open parses the PDF cross-reference structure from data.
func (e *LedongthucEngine) Open(data []byte) (PDFDocument, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	return &ledongthucDocument{reader: reader}, nil
}

type ledongthucDocument struct {
	reader *pdf.Reader
}

func (d *ledongthucDocument) NumPages() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageText(index int, opts TextOptions) (string, error) {
	if index < 0 || index >= d.reader.NumPage() {
		return "", fmt.Errorf("page index %d out of range", index)
	}
	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return renderPage(page.Content().Text, opts), nil
}
