// Package ledger owns the append-only transaction history and the
// reporting aggregations built over it.
package ledger

import (
	"time"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// Ledger is the append-only collection of transactions. Entries are never
// mutated after they are recorded; reporting reads them back out.
type Ledger struct {
	transactions []domain.Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a transaction.
func (l *Ledger) Append(tx domain.Transaction) {
	l.transactions = append(l.transactions, tx)
}

// All returns every transaction in recording order.
func (l *Ledger) All() []domain.Transaction {
	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// FilterByRange returns the transactions whose date falls within
// [start, end], inclusive on both ends.
func (l *Ledger) FilterByRange(start, end time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range l.transactions {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Replace swaps the entire history, used when restoring a snapshot.
func (l *Ledger) Replace(transactions []domain.Transaction) {
	l.transactions = make([]domain.Transaction, len(transactions))
	copy(l.transactions, transactions)
}
