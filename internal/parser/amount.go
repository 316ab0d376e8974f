package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount means a captured amount lexeme could not be parsed.
// The transaction pattern should never let one through, so callers treat
// it as an internal inconsistency rather than a bad statement.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts "3.85" or "(12.00)" into a signed decimal.
// A parenthesized amount is a credit and comes back negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	negative := false
	if len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}

	if negative {
		return d.Neg(), nil
	}
	return d, nil
}
