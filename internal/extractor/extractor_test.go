package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "single page",
			input:    "CITI PREMIERMILES CARD 4444 5555 6666 5136 - J DOE\n05 JUN TAOBAO.COM 3.85",
			expected: [][]string{{"CITI PREMIERMILES CARD 4444 5555 6666 5136 - J DOE", "05 JUN TAOBAO.COM 3.85"}},
		},
		{
			name:     "form feed pages with trailing feed",
			input:    "page one\fpage two\n\f",
			expected: [][]string{{"page one"}, {"page two", ""}},
		},
		{
			name:     "page break marker",
			input:    "a\n---PAGE_BREAK---\nb",
			expected: [][]string{{"a", ""}, {"", "b"}},
		},
		{
			name:     "crlf and artifacts",
			input:    "05 JUN\u00A0SHOP\t3.85\u200B\r\nnext",
			expected: [][]string{{"05 JUN SHOP 3.85", "next"}},
		},
		{
			name:     "blank middle page kept",
			input:    "one\f\ftwo",
			expected: [][]string{{"one"}, {""}, {"two"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseText(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.NumPages() != len(tt.expected) {
				t.Fatalf("pages: got %d, want %d", doc.NumPages(), len(tt.expected))
			}
			for i, want := range tt.expected {
				got, err := doc.PageLines(i)
				if err != nil {
					t.Fatalf("page %d: unexpected error: %v", i+1, err)
				}
				if strings.Join(got, "|") != strings.Join(want, "|") {
					t.Errorf("page %d: got %q, want %q", i+1, got, want)
				}
			}
		})
	}
}

func TestParseTextEmpty(t *testing.T) {
	for _, input := range []string{"", "  \n\t\n"} {
		if _, err := ParseText(input); !errors.Is(err, ErrUnreadableDocument) {
			t.Errorf("ParseText(%q): expected ErrUnreadableDocument, got %v", input, err)
		}
	}
}

func TestTextDocumentPageOutOfRange(t *testing.T) {
	doc, err := ParseText("only page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := doc.PageLines(1); err == nil {
		t.Error("expected error for page out of range")
	}
}

func TestOpenBytesNotPDF(t *testing.T) {
	inputs := map[string][]byte{
		"empty":   {},
		"garbage": []byte("this is not a pdf statement"),
		"header":  []byte("%PDF-1.4\n%broken"),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			doc, err := OpenBytes(data)
			if !errors.Is(err, ErrUnreadableDocument) {
				t.Errorf("expected ErrUnreadableDocument, got %v", err)
			}
			if doc != nil {
				t.Error("expected nil document")
			}
		})
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestOpenFileNotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := OpenFile(path); !errors.Is(err, ErrUnreadableDocument) {
		t.Errorf("expected ErrUnreadableDocument, got %v", err)
	}
}
