package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgNotFound          = "not found"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgDuplicateID       = "duplicate id"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound          = errors.New(ErrMsgNotFound)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrDuplicateID       = errors.New(ErrMsgDuplicateID)
)

// MissingMaterial describes one ingredient shortfall: how much a craft
// requires, how much is in stock, and the gap.
type MissingMaterial struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
	Missing   int    `json:"missing"`
}

// InsufficientMaterialsError is returned when a craft or production start
// cannot proceed. It carries the full shortage report so callers can render
// it; errors.Is matches ErrInsufficientStock.
type InsufficientMaterialsError struct {
	RecipeName string
	Missing    []MissingMaterial
}

func (e *InsufficientMaterialsError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (need %d, have %d)", m.Name, m.Required, m.Available))
	}
	return fmt.Sprintf("cannot craft %s: %s: %s", e.RecipeName, ErrMsgInsufficientStock, strings.Join(parts, ", "))
}

func (e *InsufficientMaterialsError) Unwrap() error {
	return ErrInsufficientStock
}

// ContractShortageError is returned when contract production cannot start.
// Shortages carry the aggregated per-ingredient gap across all contract
// lines; errors.Is matches ErrInsufficientStock.
type ContractShortageError struct {
	ContractName string
	Shortages    []MaterialRequirement
}

func (e *ContractShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (need %d more, %d in stock)", s.Name, s.NeedToProduce, s.InStock))
	}
	return fmt.Sprintf("cannot fulfill %s: %s: %s", e.ContractName, ErrMsgInsufficientStock, strings.Join(parts, ", "))
}

func (e *ContractShortageError) Unwrap() error {
	return ErrInsufficientStock
}

// MaterialRequirement is one aggregated ingredient bucket of a contract:
// total required across all contract lines against current stock.
type MaterialRequirement struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Required      int    `json:"required"`
	InStock       int    `json:"inStock"`
	NeedToProduce int    `json:"needToProduce"`
}
