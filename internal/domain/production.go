package domain

import "time"

// Priority orders queued production jobs. Urgent sorts first.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

// Rank returns the sort rank of the priority; lower sorts first. Unknown
// priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityUrgent || p == PriorityHigh || p == PriorityNormal
}

// ProductionStatus tracks the lifecycle of a queued job.
type ProductionStatus string

const (
	ProductionPending   ProductionStatus = "pending"
	ProductionReady     ProductionStatus = "ready"
	ProductionCompleted ProductionStatus = "completed"
	ProductionCancelled ProductionStatus = "cancelled"
)

// Valid reports whether s is one of the known production statuses.
func (s ProductionStatus) Valid() bool {
	switch s {
	case ProductionPending, ProductionReady, ProductionCompleted, ProductionCancelled:
		return true
	}
	return false
}

// MaterialsStatus summarises ingredient availability for a queued job.
type MaterialsStatus string

const (
	MaterialsReady   MaterialsStatus = "ready"
	MaterialsMissing MaterialsStatus = "missing"
	MaterialsUnknown MaterialsStatus = "unknown"
)

// ProductionItem is one queued crafting job. ItemID references the recipe
// to execute; all cost/value/feasibility figures are derived from the
// recipe at read time, never stored.
type ProductionItem struct {
	ID       string           `json:"id"`
	ItemID   string           `json:"itemId"`
	Quantity int              `json:"quantity"`
	Priority Priority         `json:"priority"`
	Timeline time.Time        `json:"timeline"`
	Status   ProductionStatus `json:"status"`
}
