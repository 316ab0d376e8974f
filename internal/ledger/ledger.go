// Package ledger holds the transactions of the statement currently loaded.
// It is shared between request handlers, so every operation is guarded.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/decryp7/credit-card-billsplit/internal/models"
)

// ErrNotFound is returned for an unknown transaction ID.
var ErrNotFound = errors.New("transaction not found")

// Ledger is a concurrency-safe transaction collection.
type Ledger struct {
	mu    sync.RWMutex
	txns  []models.Transaction
	index map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Replace discards the current transactions and installs txns. Readers see
// either the old set or the new one, never a mix.
func (l *Ledger) Replace(txns []models.Transaction) {
	fresh := make([]models.Transaction, len(txns))
	index := make(map[string]int, len(txns))
	for i, txn := range txns {
		fresh[i] = cloneTransaction(txn)
		index[txn.ID] = i
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.txns = fresh
	l.index = index
}

// Transactions returns a copy of the transactions in document order.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Transaction, len(l.txns))
	for i, txn := range l.txns {
		out[i] = cloneTransaction(txn)
	}
	return out
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.txns)
}

// Get returns a copy of the transaction with the given ID.
func (l *Ledger) Get(id string) (models.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneTransaction(l.txns[i]), nil
}

// ToggleTag toggles tag on the transaction with the given ID and returns
// the updated transaction.
func (l *Ledger) ToggleTag(id string, tag models.Tag) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := l.txns[i].ToggleTag(tag); err != nil {
		return models.Transaction{}, err
	}
	return cloneTransaction(l.txns[i]), nil
}

// Summary aggregates the current transactions.
func (l *Ledger) Summary() models.Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return models.Summarize(l.txns)
}

func cloneTransaction(txn models.Transaction) models.Transaction {
	tags := make([]models.Tag, len(txn.Tags))
	copy(tags, txn.Tags)
	txn.Tags = tags
	return txn
}
