package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// List owns the stored per-item prices. Every price change is stamped; the
// stamps survive in the persisted snapshot.
type List struct {
	entries []*domain.PriceEntry
	now     func() time.Time
}

// NewList creates an empty price list.
func NewList() *List {
	return &List{now: time.Now}
}

// Find returns the price entry for the given item id, or nil.
func (l *List) Find(id string) *domain.PriceEntry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Entries returns the price list in insertion order.
func (l *List) Entries() []*domain.PriceEntry {
	out := make([]*domain.PriceEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Set stores the price for an item, updating the existing entry in place
// or inserting a new one, and stamps the change time.
func (l *List) Set(id string, price decimal.Decimal) (*domain.PriceEntry, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: price entry needs an item id", domain.ErrInvalidInput)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if existing := l.Find(id); existing != nil {
		existing.Price = price
		existing.LastUpdated = l.now()
		return existing, nil
	}
	entry := &domain.PriceEntry{ID: id, Price: price, LastUpdated: l.now()}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Replace swaps the entire price list, used when restoring a snapshot.
func (l *List) Replace(entries []domain.PriceEntry) {
	l.entries = make([]*domain.PriceEntry, 0, len(entries))
	for i := range entries {
		rec := entries[i]
		l.entries = append(l.entries, &rec)
	}
}
