package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/decryp7/credit-card-billsplit/internal/models"
)

// PageSource yields the text lines of a statement, page by page.
type PageSource interface {
	NumPages() int
	// PageLines returns the lines of the page at index (0-based). An error
	// means the page's text is unavailable; the page is skipped.
	PageLines(index int) ([]string, error)
}

// Pages is an in-memory PageSource.
type Pages [][]string

func (p Pages) NumPages() int { return len(p) }

func (p Pages) PageLines(index int) ([]string, error) {
	if index < 0 || index >= len(p) {
		return nil, fmt.Errorf("page %d out of range", index+1)
	}
	return p[index], nil
}

// Engine walks a statement line by line, tracking the current card.
type Engine struct {
	classifier *Classifier
	log        zerolog.Logger
	newID      func() string
}

// NewEngine returns an engine using c, or the default classifier if c is nil.
func NewEngine(c *Classifier, log zerolog.Logger) *Engine {
	if c == nil {
		c = DefaultClassifier()
	}
	for _, name := range c.Inconsistent() {
		log.Warn().Str("pattern", name).Msg("pattern capture groups do not match; it will never match a line")
	}
	return &Engine{
		classifier: c,
		log:        log,
		newID:      uuid.NewString,
	}
}

// Extract runs the default engine over in-memory pages and returns the
// transactions in document order.
func Extract(pages [][]string) ([]models.Transaction, error) {
	stmt, err := NewEngine(nil, zerolog.Nop()).Run(Pages(pages))
	if err != nil {
		return nil, err
	}
	return stmt.Transactions, nil
}

// Run extracts every transaction from src. Unreadable pages are skipped and
// recorded; an amount that cannot be parsed aborts the run.
func (e *Engine) Run(src PageSource) (*models.Statement, error) {
	stmt := &models.Statement{
		Cards:        []string{},
		Transactions: []models.Transaction{},
	}

	currentCard := ""
	seenCards := make(map[string]bool)

	for pageIdx := 0; pageIdx < src.NumPages(); pageIdx++ {
		pageNum := pageIdx + 1

		lines, err := src.PageLines(pageIdx)
		if err != nil {
			e.log.Warn().Err(err).Int("page", pageNum).Msg("skipping unreadable page")
			stmt.SkippedPages = append(stmt.SkippedPages, pageNum)
			continue
		}

		for i, raw := range lines {
			if strings.TrimSpace(raw) == "" {
				continue
			}

			line := e.classifier.Classify(raw)
			stmt.DebugLines = append(stmt.DebugLines, models.DebugLine{
				Page:    pageNum,
				LineNum: i + 1,
				Text:    truncate(raw, 120),
				Result:  line.Kind.String(),
			})

			switch line.Kind {
			case LineCardHeader:
				currentCard = line.Card
				if !seenCards[currentCard] {
					seenCards[currentCard] = true
					stmt.Cards = append(stmt.Cards, currentCard)
				}

			case LineTransaction:
				amount, err := ParseAmount(line.AmountText)
				if err != nil {
					return nil, fmt.Errorf("page %d line %d: %w", pageNum, i+1, err)
				}
				stmt.Transactions = append(stmt.Transactions, models.Transaction{
					ID:          e.newID(),
					Date:        line.Date,
					Description: line.Description,
					Amount:      amount,
					Card:        currentCard,
					Tags:        []models.Tag{},
				})
			}
		}
	}

	e.log.Debug().
		Int("pages", src.NumPages()).
		Int("skipped", len(stmt.SkippedPages)).
		Int("cards", len(stmt.Cards)).
		Int("transactions", len(stmt.Transactions)).
		Msg("statement extracted")

	return stmt, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
