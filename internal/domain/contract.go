package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus tracks the lifecycle of a customer contract.
type ContractStatus string

const (
	ContractPending    ContractStatus = "pending"
	ContractInProgress ContractStatus = "in-progress"
	ContractCompleted  ContractStatus = "completed"
	ContractFailed     ContractStatus = "failed"
)

// Valid reports whether s is one of the known contract statuses.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractPending, ContractInProgress, ContractCompleted, ContractFailed:
		return true
	}
	return false
}

// ContractItem is one line of a contract: a crafted item (by recipe id)
// and the quantity of craft invocations ordered.
type ContractItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Contract is a multi-line customer order. Material requirements and
// financials are derived from the referenced recipes at read time.
type Contract struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Client          string          `json:"client"`
	Items           []ContractItem  `json:"items"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	AdditionalCosts decimal.Decimal `json:"additionalCosts"`
	Status          ContractStatus  `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
}
