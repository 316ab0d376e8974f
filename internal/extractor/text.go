package extractor

import (
	"fmt"
	"regexp"
	"strings"
)

// PageBreak separates pages in text pasted from a browser-side extraction.
const PageBreak = "---PAGE_BREAK---"

// pageSeparator matches a form feed (pdftotext) or a PageBreak marker line.
var pageSeparator = regexp.MustCompile(`(?m)\f|^[ \t]*` + regexp.QuoteMeta(PageBreak) + `[ \t]*$`)

// TextDocument is a statement whose text was extracted elsewhere.
type TextDocument struct {
	pages [][]string
}

// ParseText splits text into pages and lines. Blank pages are kept so page
// numbers stay aligned with the source document.
func ParseText(text string) (*TextDocument, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text", ErrUnreadableDocument)
	}

	chunks := pageSeparator.Split(text, -1)
	// A trailing separator (pdftotext ends with \f) does not start a page.
	if len(chunks) > 1 && strings.TrimSpace(chunks[len(chunks)-1]) == "" {
		chunks = chunks[:len(chunks)-1]
	}

	doc := &TextDocument{pages: make([][]string, 0, len(chunks))}
	for _, chunk := range chunks {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			lines = append(lines, normalizeLine(line))
		}
		doc.pages = append(doc.pages, lines)
	}
	return doc, nil
}

// NumPages returns the page count.
func (d *TextDocument) NumPages() int {
	return len(d.pages)
}

// PageLines returns the lines of the page at index (0-based).
func (d *TextDocument) PageLines(index int) ([]string, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range", index+1)
	}
	return d.pages[index], nil
}

// normalizeLine cleans up common PDF extraction artifacts.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\u200B", "")
	line = strings.ReplaceAll(line, "\u00A0", " ")
	line = strings.ReplaceAll(line, "\t", " ")
	return strings.TrimSpace(line)
}
