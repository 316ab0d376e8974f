package parser

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		line     string
		expected Line
	}{
		{
			name:     "card header",
			line:     "CITI PREMIERMILES CARD 4444 5555 6666 5136 - J DOE",
			expected: Line{Kind: LineCardHeader, Card: "4444 5555 6666 5136"},
		},
		{
			name:     "card header lowercase keyword",
			line:     "citi rewards card 1234 5678 9012 3456 - JANE DOE",
			expected: Line{Kind: LineCardHeader, Card: "1234 5678 9012 3456"},
		},
		{
			name:     "card header with masking before digits",
			line:     "CITI CLEAR CARD ****-1111 2222 3333 4444 - J DOE",
			expected: Line{Kind: LineCardHeader, Card: "1111 2222 3333 4444"},
		},
		{
			name:     "card header without trailing name",
			line:     "CARD 4444 5555 6666 5136 -",
			expected: Line{Kind: LineCardHeader, Card: "4444 5555 6666 5136"},
		},
		{
			name:     "transaction",
			line:     "05 JUN TAOBAO.COM Singapore SG 3.85",
			expected: Line{Kind: LineTransaction, Date: "05 JUN", Description: "TAOBAO.COM Singapore SG", AmountText: "3.85"},
		},
		{
			name:     "credit transaction",
			line:     "07 JUN REFUND MERCHANT (12.00)",
			expected: Line{Kind: LineTransaction, Date: "07 JUN", Description: "REFUND MERCHANT", AmountText: "(12.00)"},
		},
		{
			name:     "transaction mixed case month",
			line:     "18 Dec GRAB RIDES 14.20",
			expected: Line{Kind: LineTransaction, Date: "18 Dec", Description: "GRAB RIDES", AmountText: "14.20"},
		},
		{
			name:     "description containing an amount",
			line:     "01 JAN FX 12.00 USD 16.35",
			expected: Line{Kind: LineTransaction, Date: "01 JAN", Description: "FX 12.00 USD", AmountText: "16.35"},
		},
		{
			name:     "header wins over transaction",
			line:     "05 JUN CARD 4444 5555 6666 5136 - FEE 3.00",
			expected: Line{Kind: LineCardHeader, Card: "4444 5555 6666 5136"},
		},
		{name: "footer", line: "Page 1 of 4", expected: Line{Kind: LineUnmatched}},
		{name: "empty", line: "", expected: Line{Kind: LineUnmatched}},
		{name: "masked card only", line: "CARD XXXX XXXX XXXX 5136 - J DOE", expected: Line{Kind: LineUnmatched}},
		{name: "cardholder is not card", line: "CARDHOLDER 4444 5555 6666 5136 - J DOE", expected: Line{Kind: LineUnmatched}},
		{name: "three decimals", line: "05 JUN SHOP 3.855", expected: Line{Kind: LineUnmatched}},
		{name: "bad month", line: "05 JUX SHOP 3.85", expected: Line{Kind: LineUnmatched}},
		{name: "single digit day", line: "5 JUN SHOP 3.85", expected: Line{Kind: LineUnmatched}},
		{name: "no description", line: "05 JUN 3.85", expected: Line{Kind: LineUnmatched}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.line)
			if got != tt.expected {
				t.Errorf("Classify(%q):\n got %+v\nwant %+v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestNewClassifierInvalidPattern(t *testing.T) {
	if _, err := NewClassifier("(", ""); err == nil {
		t.Error("expected error for invalid card header pattern")
	}
	if _, err := NewClassifier("", "[a-"); err == nil {
		t.Error("expected error for invalid transaction pattern")
	}
}

func TestClassifierCaptureCountMismatch(t *testing.T) {
	// Two groups where three are required: never a transaction.
	c, err := NewClassifier(`CARD (\d+) (\d+)`, `^(\d{2} \w{3}) (.+)$`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(c.Inconsistent()); got != 2 {
		t.Errorf("Inconsistent(): got %d patterns, want 2", got)
	}

	for _, line := range []string{"CARD 1234 5678", "05 JUN SHOP 3.85"} {
		if got := c.Classify(line); got.Kind != LineUnmatched {
			t.Errorf("Classify(%q): got %v, want unmatched", line, got.Kind)
		}
	}
}

func TestClassifierCustomPatterns(t *testing.T) {
	c, err := NewClassifier(
		`(?i)^ACCOUNT\s+(\d{4}-\d{4})$`,
		`^(\d{2}/\d{2})\s+(.+?)\s+(\(?\d+\.\d{2}\)?)$`,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Inconsistent()) != 0 {
		t.Errorf("unexpected inconsistent patterns: %v", c.Inconsistent())
	}

	if got := c.Classify("account 1234-5678"); got.Kind != LineCardHeader || got.Card != "1234-5678" {
		t.Errorf("got %+v, want card header 1234-5678", got)
	}
	if got := c.Classify("05/06 COFFEE (4.50)"); got.Kind != LineTransaction || got.AmountText != "(4.50)" {
		t.Errorf("got %+v, want transaction (4.50)", got)
	}
}

func TestLineKindString(t *testing.T) {
	tests := []struct {
		kind     LineKind
		expected string
	}{
		{LineCardHeader, "card-header"},
		{LineTransaction, "transaction"},
		{LineUnmatched, "skipped"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("got %q, want %q", got, tt.expected)
		}
	}
}
