// Package snapshot defines the persisted document every piece of shop
// state serializes into, and the capture/restore plumbing around it. The
// document shape is a contract with the persistence layer: a round trip
// through it must lose no field.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anvilworks/forgeledger/internal/contract"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/pricing"
	"github.com/anvilworks/forgeledger/internal/production"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// ErrNoSnapshot is returned by Load when no snapshot file exists yet.
var ErrNoSnapshot = errors.New("no snapshot file")

// Document is the single structured snapshot of all shop state.
type Document struct {
	AppState     domain.Settings         `json:"appState"`
	Inventory    []domain.Material       `json:"inventory"`
	CraftedItems []domain.CraftedItem    `json:"craftedItems"`
	Recipes      []domain.Recipe         `json:"recipes"`
	Pricing      []domain.PriceEntry     `json:"pricing"`
	Production   []domain.ProductionItem `json:"production"`
	SalesHistory []domain.Transaction    `json:"salesHistory"`
	Contracts    []domain.Contract       `json:"contracts"`
}

// Stores bundles every state owner the snapshot captures and restores.
type Stores struct {
	Settings  *domain.Settings
	Inventory *inventory.Store
	Recipes   *recipe.Store
	Pricing   *pricing.List
	Queue     *production.Manager
	Ledger    *ledger.Ledger
	Contracts contract.Service
}

// Capture builds a document from the current state of every store. The
// collections are initialized so an empty shop serializes as arrays, never
// null.
func Capture(s Stores) *Document {
	doc := &Document{
		AppState:     *s.Settings,
		Inventory:    []domain.Material{},
		CraftedItems: []domain.CraftedItem{},
		Recipes:      []domain.Recipe{},
		Pricing:      []domain.PriceEntry{},
		Production:   []domain.ProductionItem{},
		SalesHistory: []domain.Transaction{},
		Contracts:    []domain.Contract{},
	}
	for _, m := range s.Inventory.Materials() {
		doc.Inventory = append(doc.Inventory, *m)
	}
	for _, c := range s.Inventory.CraftedItems() {
		doc.CraftedItems = append(doc.CraftedItems, *c)
	}
	for _, r := range s.Recipes.List() {
		doc.Recipes = append(doc.Recipes, *r)
	}
	for _, p := range s.Pricing.Entries() {
		doc.Pricing = append(doc.Pricing, *p)
	}
	for _, it := range s.Queue.Items() {
		doc.Production = append(doc.Production, *it)
	}
	doc.SalesHistory = s.Ledger.All()
	for _, c := range s.Contracts.List() {
		doc.Contracts = append(doc.Contracts, *c)
	}
	return doc
}

// Restore replaces the contents of every store with the document's state.
func Restore(doc *Document, s Stores) {
	*s.Settings = doc.AppState
	s.Inventory.Replace(doc.Inventory, doc.CraftedItems)
	s.Recipes.Replace(doc.Recipes)
	s.Pricing.Replace(doc.Pricing)
	s.Queue.Replace(doc.Production)
	s.Ledger.Replace(doc.SalesHistory)
	s.Contracts.Replace(doc.Contracts)
}

// Save writes the document as JSON, creating parent directories as needed.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated snapshot.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads a document from disk. A missing file maps to ErrNoSnapshot so
// callers can fall back to seed data.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &doc, nil
}
