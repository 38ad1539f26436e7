// Package inventory holds the single authoritative collection of material
// and crafted-item stock. All services mutate stock through this store; it
// is the source of truth that recipe costs and feasibility checks are
// resolved against.
package inventory

import (
	"fmt"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// Store owns the material and crafted-item collections. Records are kept in
// insertion order so listings are stable. The store is not safe for
// concurrent use; the execution model is single-threaded and callers
// serialize access.
type Store struct {
	materials []*domain.Material
	crafted   []*domain.CraftedItem
	version   uint64
}

// NewStore creates an empty inventory store.
func NewStore() *Store {
	return &Store{}
}

// Version returns a counter that increases on every mutation. Consumers
// caching derived values (recipe costs) use it to fence staleness.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) bump() {
	s.version++
}

// FindMaterial returns the material with the given id, or nil.
func (s *Store) FindMaterial(id string) *domain.Material {
	for _, m := range s.materials {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// FindCraftedItem returns the crafted item with the given id, or nil.
func (s *Store) FindCraftedItem(id string) *domain.CraftedItem {
	for _, c := range s.crafted {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Materials returns the material collection in insertion order. The slice
// is a copy but the records are shared; callers treat them as read-only and
// mutate through the store.
func (s *Store) Materials() []*domain.Material {
	out := make([]*domain.Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// CraftedItems returns the crafted-item collection in insertion order.
func (s *Store) CraftedItems() []*domain.CraftedItem {
	out := make([]*domain.CraftedItem, len(s.crafted))
	copy(out, s.crafted)
	return out
}

// AddMaterial inserts a material, or merges when the id already exists:
// quantities add, cost takes the incoming value (last write wins on price).
func (s *Store) AddMaterial(m domain.Material) (*domain.Material, error) {
	if m.ID == "" || m.Name == "" {
		return nil, fmt.Errorf("%w: material id and name are required", domain.ErrInvalidInput)
	}
	if m.Quantity < 0 {
		return nil, fmt.Errorf("%w: negative quantity %d", domain.ErrInvalidInput, m.Quantity)
	}
	defer s.bump()
	if existing := s.FindMaterial(m.ID); existing != nil {
		existing.Quantity += m.Quantity
		existing.Cost = m.Cost
		return existing, nil
	}
	rec := m
	s.materials = append(s.materials, &rec)
	return &rec, nil
}

// AddCraftedItem inserts a crafted item, or merges when the id already
// exists: quantities add, cost and value take the incoming values.
func (s *Store) AddCraftedItem(c domain.CraftedItem) (*domain.CraftedItem, error) {
	if c.ID == "" || c.Name == "" {
		return nil, fmt.Errorf("%w: crafted item id and name are required", domain.ErrInvalidInput)
	}
	if c.Quantity < 0 {
		return nil, fmt.Errorf("%w: negative quantity %d", domain.ErrInvalidInput, c.Quantity)
	}
	defer s.bump()
	if existing := s.FindCraftedItem(c.ID); existing != nil {
		existing.Quantity += c.Quantity
		existing.Cost = c.Cost
		existing.Value = c.Value
		return existing, nil
	}
	rec := c
	s.crafted = append(s.crafted, &rec)
	return &rec, nil
}

// IncrementCraftedItem adds produced units to an existing crafted item
// without touching its cost or value snapshot.
func (s *Store) IncrementCraftedItem(id string, quantity int) (*domain.CraftedItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	c := s.FindCraftedItem(id)
	if c == nil {
		return nil, fmt.Errorf("crafted item %q: %w", id, domain.ErrNotFound)
	}
	c.Quantity += quantity
	s.bump()
	return c, nil
}

// RemoveMaterial decrements material stock in place. Fails without mutation
// when the id is unknown or the quantity exceeds current stock.
func (s *Store) RemoveMaterial(id string, quantity int) (*domain.Material, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	m := s.FindMaterial(id)
	if m == nil {
		return nil, fmt.Errorf("material %q: %w", id, domain.ErrNotFound)
	}
	if m.Quantity < quantity {
		return nil, fmt.Errorf("%w: %s has %d, requested %d", domain.ErrInsufficientStock, m.Name, m.Quantity, quantity)
	}
	m.Quantity -= quantity
	s.bump()
	return m, nil
}

// RemoveCraftedItem decrements crafted-item stock in place with the same
// failure rules as RemoveMaterial.
func (s *Store) RemoveCraftedItem(id string, quantity int) (*domain.CraftedItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	c := s.FindCraftedItem(id)
	if c == nil {
		return nil, fmt.Errorf("crafted item %q: %w", id, domain.ErrNotFound)
	}
	if c.Quantity < quantity {
		return nil, fmt.Errorf("%w: %s has %d, requested %d", domain.ErrInsufficientStock, c.Name, c.Quantity, quantity)
	}
	c.Quantity -= quantity
	s.bump()
	return c, nil
}

// DeleteMaterial removes the material record entirely.
func (s *Store) DeleteMaterial(id string) error {
	for i, m := range s.materials {
		if m.ID == id {
			s.materials = append(s.materials[:i], s.materials[i+1:]...)
			s.bump()
			return nil
		}
	}
	return fmt.Errorf("material %q: %w", id, domain.ErrNotFound)
}

// DeleteCraftedItem removes the crafted-item record entirely.
func (s *Store) DeleteCraftedItem(id string) error {
	for i, c := range s.crafted {
		if c.ID == id {
			s.crafted = append(s.crafted[:i], s.crafted[i+1:]...)
			s.bump()
			return nil
		}
	}
	return fmt.Errorf("crafted item %q: %w", id, domain.ErrNotFound)
}

// Replace swaps the entire contents of the store, used when restoring a
// persisted snapshot.
func (s *Store) Replace(materials []domain.Material, crafted []domain.CraftedItem) {
	s.materials = make([]*domain.Material, 0, len(materials))
	for i := range materials {
		rec := materials[i]
		s.materials = append(s.materials, &rec)
	}
	s.crafted = make([]*domain.CraftedItem, 0, len(crafted))
	for i := range crafted {
		rec := crafted[i]
		s.crafted = append(s.crafted, &rec)
	}
	s.bump()
}
