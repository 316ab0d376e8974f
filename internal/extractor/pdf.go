package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadableDocument means the statement as a whole could not be opened.
// It is distinct from a readable statement that holds no transactions.
var ErrUnreadableDocument = errors.New("unreadable document")

// PDFDocument exposes the text rows of each PDF page.
type PDFDocument struct {
	reader *pdf.Reader
}

// OpenFile reads the PDF at path.
func OpenFile(path string) (*PDFDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	return OpenBytes(data)
}

// OpenBytes parses an in-memory PDF.
func OpenBytes(data []byte) (doc *PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: PDF library crashed: %v", ErrUnreadableDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if r.NumPage() == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrUnreadableDocument)
	}
	return &PDFDocument{reader: r}, nil
}

// NumPages returns the page count.
func (d *PDFDocument) NumPages() int {
	return d.reader.NumPage()
}

// PageLines returns the text rows of the page at index (0-based), top to
// bottom, with the words of each row joined by single spaces.
func (d *PDFDocument) PageLines(index int) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("page %d: PDF library crashed: %v", index+1, r)
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", index+1)
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index+1, err)
	}

	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
