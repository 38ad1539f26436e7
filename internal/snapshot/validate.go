package snapshot

import (
	"fmt"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// Validate checks a document against the invariants the stores' Add
// methods enforce. Restore swaps store contents wholesale without those
// checks, so any document arriving from outside (the import endpoint, a
// file on disk) must pass here first; a recipe with a zero output
// quantity would otherwise divide cost resolution by zero.
func Validate(doc *Document) error {
	for i, m := range doc.Inventory {
		if m.ID == "" || m.Name == "" {
			return fmt.Errorf("%w: inventory[%d] needs an id and a name", domain.ErrInvalidInput, i)
		}
		if m.Quantity < 0 {
			return fmt.Errorf("%w: material %q has negative quantity %d", domain.ErrInvalidInput, m.ID, m.Quantity)
		}
		if m.Cost.IsNegative() {
			return fmt.Errorf("%w: material %q has negative cost %s", domain.ErrInvalidInput, m.ID, m.Cost)
		}
	}
	for i, c := range doc.CraftedItems {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("%w: craftedItems[%d] needs an id and a name", domain.ErrInvalidInput, i)
		}
		if c.Quantity < 0 {
			return fmt.Errorf("%w: crafted item %q has negative quantity %d", domain.ErrInvalidInput, c.ID, c.Quantity)
		}
		if c.Cost.IsNegative() || c.Value.IsNegative() {
			return fmt.Errorf("%w: crafted item %q has negative cost or value", domain.ErrInvalidInput, c.ID)
		}
	}
	for i, r := range doc.Recipes {
		if r.ID == "" || r.Name == "" {
			return fmt.Errorf("%w: recipes[%d] needs an id and a name", domain.ErrInvalidInput, i)
		}
		if r.OutputQuantity < 1 {
			return fmt.Errorf("%w: recipe %q output quantity must be at least 1, got %d", domain.ErrInvalidInput, r.ID, r.OutputQuantity)
		}
		if r.CraftingTime <= 0 {
			return fmt.Errorf("%w: recipe %q crafting time must be positive, got %d", domain.ErrInvalidInput, r.ID, r.CraftingTime)
		}
		if r.Value.IsNegative() {
			return fmt.Errorf("%w: recipe %q has negative value %s", domain.ErrInvalidInput, r.ID, r.Value)
		}
		for _, ing := range r.Ingredients {
			if ing.ID == "" || ing.Quantity <= 0 {
				return fmt.Errorf("%w: recipe %q ingredient needs an id and a positive quantity", domain.ErrInvalidInput, r.ID)
			}
		}
	}
	for i, p := range doc.Pricing {
		if p.ID == "" {
			return fmt.Errorf("%w: pricing[%d] needs an id", domain.ErrInvalidInput, i)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("%w: price entry %q has negative price %s", domain.ErrInvalidInput, p.ID, p.Price)
		}
	}
	for i, it := range doc.Production {
		if it.ID == "" || it.ItemID == "" {
			return fmt.Errorf("%w: production[%d] needs an id and an item id", domain.ErrInvalidInput, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: production item %q quantity must be at least 1, got %d", domain.ErrInvalidInput, it.ID, it.Quantity)
		}
		if !it.Priority.Valid() {
			return fmt.Errorf("%w: production item %q has unknown priority %q", domain.ErrInvalidInput, it.ID, it.Priority)
		}
		if !it.Status.Valid() {
			return fmt.Errorf("%w: production item %q has unknown status %q", domain.ErrInvalidInput, it.ID, it.Status)
		}
	}
	for i, tx := range doc.SalesHistory {
		if tx.ID == "" {
			return fmt.Errorf("%w: salesHistory[%d] needs an id", domain.ErrInvalidInput, i)
		}
		if !tx.Type.Valid() {
			return fmt.Errorf("%w: transaction %q has unknown type %q", domain.ErrInvalidInput, tx.ID, tx.Type)
		}
		for _, line := range tx.Items {
			if line.ID == "" || line.Quantity <= 0 {
				return fmt.Errorf("%w: transaction %q line needs an id and a positive quantity", domain.ErrInvalidInput, tx.ID)
			}
		}
	}
	for i, c := range doc.Contracts {
		if c.ID == "" {
			return fmt.Errorf("%w: contracts[%d] needs an id", domain.ErrInvalidInput, i)
		}
		if !c.Status.Valid() {
			return fmt.Errorf("%w: contract %q has unknown status %q", domain.ErrInvalidInput, c.ID, c.Status)
		}
		if c.AdditionalCosts.IsNegative() {
			return fmt.Errorf("%w: contract %q has negative additional costs %s", domain.ErrInvalidInput, c.ID, c.AdditionalCosts)
		}
		for _, item := range c.Items {
			if item.ItemID == "" || item.Quantity < 1 {
				return fmt.Errorf("%w: contract %q item needs an id and a positive quantity", domain.ErrInvalidInput, c.ID)
			}
		}
	}
	return nil
}
