// Package recipe holds the recipe definitions and the resolver that turns
// them into live cost, profit and feasibility figures against current
// inventory.
package recipe

import (
	"fmt"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// Store owns the recipe collection in insertion order. Like the inventory
// store it carries a version counter so cached derived values can be fenced.
type Store struct {
	recipes []*domain.Recipe
	version uint64
}

// NewStore creates an empty recipe store.
func NewStore() *Store {
	return &Store{}
}

// Version returns a counter that increases on every mutation.
func (s *Store) Version() uint64 {
	return s.version
}

// Find returns the recipe with the given id, or nil.
func (s *Store) Find(id string) *domain.Recipe {
	for _, r := range s.recipes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// List returns the recipes in insertion order.
func (s *Store) List() []*domain.Recipe {
	out := make([]*domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Add inserts a recipe, overwriting any existing recipe with the same id.
func (s *Store) Add(r domain.Recipe) (*domain.Recipe, error) {
	if r.ID == "" || r.Name == "" {
		return nil, fmt.Errorf("%w: recipe id and name are required", domain.ErrInvalidInput)
	}
	if r.OutputQuantity < 1 {
		return nil, fmt.Errorf("%w: output quantity must be at least 1, got %d", domain.ErrInvalidInput, r.OutputQuantity)
	}
	if r.CraftingTime <= 0 {
		return nil, fmt.Errorf("%w: crafting time must be positive, got %d", domain.ErrInvalidInput, r.CraftingTime)
	}
	for _, ing := range r.Ingredients {
		if ing.ID == "" || ing.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ingredient needs an id and a positive quantity", domain.ErrInvalidInput)
		}
	}
	s.version++
	for i, existing := range s.recipes {
		if existing.ID == r.ID {
			rec := r
			s.recipes[i] = &rec
			return &rec, nil
		}
	}
	rec := r
	s.recipes = append(s.recipes, &rec)
	return &rec, nil
}

// Remove deletes the recipe with the given id.
func (s *Store) Remove(id string) error {
	for i, r := range s.recipes {
		if r.ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			s.version++
			return nil
		}
	}
	return fmt.Errorf("recipe %q: %w", id, domain.ErrNotFound)
}

// Replace swaps the entire contents, used when restoring a snapshot.
func (s *Store) Replace(recipes []domain.Recipe) {
	s.recipes = make([]*domain.Recipe, 0, len(recipes))
	for i := range recipes {
		rec := recipes[i]
		s.recipes = append(s.recipes, &rec)
	}
	s.version++
}
