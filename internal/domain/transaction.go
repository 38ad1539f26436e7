package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes ledger entries.
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
	TransactionCraft    TransactionType = "craft"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionSale || t == TransactionPurchase || t == TransactionCraft
}

// TransactionLine is a single item line within a transaction. Value is the
// per-unit amount for sale/purchase lines; for craft lines it carries the
// total output value, matching how craft results are recorded.
type TransactionLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// Transaction is an immutable, append-only ledger entry.
type Transaction struct {
	ID         string            `json:"id"`
	Type       TransactionType   `json:"type"`
	Date       time.Time         `json:"date"`
	Items      []TransactionLine `json:"items"`
	TotalValue decimal.Decimal   `json:"totalValue"`
}
