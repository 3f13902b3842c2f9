package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxDocumentSize caps in-memory extraction of the reference PDF.
const maxDocumentSize = 200 << 20

// Document is the reference text injected into every prompt. It is built
// once at startup and never modified afterwards.
type Document struct {
	path  string
	text  string
	pages int
}

// NewDocument wraps already-extracted text.
func NewDocument(path, text string, pages int) *Document {
	return &Document{path: path, text: strings.TrimSpace(text), pages: pages}
}

func (d *Document) Text() string { return d.text }

// Pages is the page count of the source PDF, including pages without text.
func (d *Document) Pages() int { return d.pages }

func (d *Document) Path() string { return d.path }

// LoadDocument reads the PDF at path and extracts its text.
func LoadDocument(ctx context.Context, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF file: %w", err)
	}
	if stat.Size() > maxDocumentSize {
		return nil, fmt.Errorf("pdf too large for in-memory extraction: %d bytes", stat.Size())
	}

	doc, err := ExtractDocument(ctx, f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// ExtractDocument walks the pages in order and joins the text of each page
// followed by a newline. Pages without extractable text contribute nothing.
func ExtractDocument(ctx context.Context, r io.ReaderAt, size int64) (doc *Document, err error) {
	// ledongthuc/pdf panics on some malformed inputs
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("failed to parse PDF: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	var b strings.Builder
	pages := reader.NumPage()

	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return &Document{text: strings.TrimSpace(b.String()), pages: pages}, nil
}
