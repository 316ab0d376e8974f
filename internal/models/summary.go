package models

import (
	"github.com/shopspring/decimal"
)

// Summary aggregates a set of transactions.
type Summary struct {
	Count    int                        `json:"count"`
	Total    decimal.Decimal            `json:"total"`
	Personal decimal.Decimal            `json:"personal"`
	Joint    decimal.Decimal            `json:"joint"`
	Untagged decimal.Decimal            `json:"untagged"`
	ByCard   map[string]decimal.Decimal `json:"byCard"`
}

// Summarize computes the grand total and the per-tag and per-card subtotals.
// Untagged transactions only count towards Total, Untagged and ByCard.
func Summarize(txns []Transaction) Summary {
	s := Summary{
		Count:    len(txns),
		Total:    decimal.Zero,
		Personal: decimal.Zero,
		Joint:    decimal.Zero,
		Untagged: decimal.Zero,
		ByCard:   make(map[string]decimal.Decimal),
	}

	for i := range txns {
		txn := &txns[i]
		s.Total = s.Total.Add(txn.Amount)

		switch {
		case txn.HasTag(TagPersonal):
			s.Personal = s.Personal.Add(txn.Amount)
		case txn.HasTag(TagJoint):
			s.Joint = s.Joint.Add(txn.Amount)
		default:
			s.Untagged = s.Untagged.Add(txn.Amount)
		}

		if sum, ok := s.ByCard[txn.Card]; ok {
			s.ByCard[txn.Card] = sum.Add(txn.Amount)
		} else {
			s.ByCard[txn.Card] = txn.Amount
		}
	}

	return s
}

// ForTag returns the subtotal for tag t.
func (s Summary) ForTag(t Tag) decimal.Decimal {
	switch t {
	case TagPersonal:
		return s.Personal
	case TagJoint:
		return s.Joint
	default:
		return decimal.Zero
	}
}
