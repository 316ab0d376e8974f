package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// LineKind identifies which pattern a statement line matched.
type LineKind int

const (
	LineUnmatched LineKind = iota
	LineCardHeader
	LineTransaction
)

func (k LineKind) String() string {
	switch k {
	case LineCardHeader:
		return "card-header"
	case LineTransaction:
		return "transaction"
	default:
		return "skipped"
	}
}

// Line is the classification of a single statement line. Card is set for
// LineCardHeader; Date, Description and AmountText for LineTransaction.
type Line struct {
	Kind        LineKind
	Card        string
	Date        string
	Description string
	AmountText  string
}

// DefaultCardHeaderPattern matches "CITI PREMIERMILES CARD 4444 5555 6666 5136 - J DOE".
const DefaultCardHeaderPattern = `(?i)\bCARD\b.*?\b(\d{4} \d{4} \d{4} \d{4})\s+-(?:\s.*)?$`

// DefaultTransactionPattern matches "05 JUN TAOBAO.COM Singapore SG 3.85"
// and "07 JUN REFUND (12.00)".
const DefaultTransactionPattern = `(?i)^\s*(\d{2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec))\s+` +
	`(.+?)\s+` +
	`(\(\d+\.\d{2}\)|\d+\.\d{2})\s*$`

const (
	cardHeaderGroups  = 1
	transactionGroups = 3
)

// linePattern is a compiled expression that must yield an exact number of
// capture groups to count as a match.
type linePattern struct {
	re     *regexp.Regexp
	groups int
}

func compileLinePattern(name, expr string, groups int) (linePattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return linePattern{}, fmt.Errorf("invalid %s pattern: %w", name, err)
	}
	return linePattern{re: re, groups: groups}, nil
}

// consistent reports whether the expression declares the expected groups.
func (p linePattern) consistent() bool {
	return p.re.NumSubexp() == p.groups
}

// match returns the captured groups, or false when the line does not match
// or the capture count is not the expected one.
func (p linePattern) match(line string) ([]string, bool) {
	m := p.re.FindStringSubmatch(line)
	if m == nil || len(m)-1 != p.groups {
		return nil, false
	}
	return m[1:], true
}

// Classifier applies the card-header and transaction patterns to lines.
// The card-header pattern always takes precedence.
type Classifier struct {
	cardHeader  linePattern
	transaction linePattern
}

// NewClassifier compiles the given expressions. Empty strings select the
// default patterns.
func NewClassifier(cardHeaderExpr, transactionExpr string) (*Classifier, error) {
	if cardHeaderExpr == "" {
		cardHeaderExpr = DefaultCardHeaderPattern
	}
	if transactionExpr == "" {
		transactionExpr = DefaultTransactionPattern
	}

	card, err := compileLinePattern("card header", cardHeaderExpr, cardHeaderGroups)
	if err != nil {
		return nil, err
	}
	txn, err := compileLinePattern("transaction", transactionExpr, transactionGroups)
	if err != nil {
		return nil, err
	}
	return &Classifier{cardHeader: card, transaction: txn}, nil
}

// DefaultClassifier returns a classifier using the built-in patterns.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier("", "")
	if err != nil {
		panic(err)
	}
	return c
}

// Inconsistent lists patterns whose group count can never produce a match.
func (c *Classifier) Inconsistent() []string {
	var names []string
	if !c.cardHeader.consistent() {
		names = append(names, fmt.Sprintf("card header (want %d groups, has %d)", c.cardHeader.groups, c.cardHeader.re.NumSubexp()))
	}
	if !c.transaction.consistent() {
		names = append(names, fmt.Sprintf("transaction (want %d groups, has %d)", c.transaction.groups, c.transaction.re.NumSubexp()))
	}
	return names
}

// Classify reports which pattern the line matches, if any.
func (c *Classifier) Classify(line string) Line {
	if m, ok := c.cardHeader.match(line); ok {
		return Line{Kind: LineCardHeader, Card: m[0]}
	}
	if m, ok := c.transaction.match(line); ok {
		return Line{
			Kind:        LineTransaction,
			Date:        m[0],
			Description: strings.TrimSpace(m[1]),
			AmountText:  m[2],
		}
	}
	return Line{Kind: LineUnmatched}
}
