package models

import (
	"github.com/shopspring/decimal"
)

// Transaction represents a single credit card statement line item.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // verbatim, e.g. "05 JUN"
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative for credits/refunds
	Card        string          `json:"card"`
	Tags        []Tag           `json:"tags"`
}

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	Page    int    `json:"page"`
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "card-header", "transaction", "skipped"
}

// Statement holds the outcome of one extraction run.
type Statement struct {
	Cards        []string      `json:"cards"`
	Transactions []Transaction `json:"transactions"`
	SkippedPages []int         `json:"skippedPages,omitempty"`
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
}
