// Package production manages the ordered backlog of pending crafting jobs
// and hands ready jobs to the crafting engine.
package production

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// View is a queue item together with its recipe-derived figures, resolved
// at read time.
type View struct {
	Item             *domain.ProductionItem   `json:"item"`
	Name             string                   `json:"name"`
	EstimatedCost    decimal.Decimal          `json:"estimatedCost"`
	EstimatedValue   decimal.Decimal          `json:"estimatedValue"`
	EstimatedProfit  decimal.Decimal          `json:"estimatedProfit"`
	EstimatedTime    int                      `json:"estimatedTime"` // minutes
	MaterialsStatus  domain.MaterialsStatus   `json:"materialsStatus"`
	MissingMaterials []domain.MissingMaterial `json:"missingMaterials,omitempty"`
}

// UpdateParams carries the fields of a queued job that may be edited in
// place. Nil fields are left unchanged.
type UpdateParams struct {
	Quantity *int
	Priority *domain.Priority
	Timeline *time.Time
}

// Manager owns the production queue. Completed items stay in the
// underlying collection until explicitly removed but are excluded from the
// active sorted view.
type Manager struct {
	items    []*domain.ProductionItem
	recipes  *recipe.Store
	resolver *recipe.Resolver
	crafter  crafting.Service
	newID    func() string
}

// NewManager creates a production queue manager.
func NewManager(recipes *recipe.Store, resolver *recipe.Resolver, crafter crafting.Service) *Manager {
	return &Manager{
		recipes:  recipes,
		resolver: resolver,
		crafter:  crafter,
		newID:    uuid.NewString,
	}
}

// Add appends a job to the queue, assigning an id when absent.
func (m *Manager) Add(item domain.ProductionItem) (*domain.ProductionItem, error) {
	if item.ItemID == "" {
		return nil, fmt.Errorf("%w: production item needs a recipe id", domain.ErrInvalidInput)
	}
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, item.Quantity)
	}
	if item.Priority == "" {
		item.Priority = domain.PriorityNormal
	}
	if !item.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, item.Priority)
	}
	if item.Status == "" {
		item.Status = domain.ProductionPending
	}
	if item.ID == "" {
		item.ID = m.newID()
	} else if m.find(item.ID) != nil {
		return nil, fmt.Errorf("production item %q: %w", item.ID, domain.ErrDuplicateID)
	}
	rec := item
	m.items = append(m.items, &rec)
	return &rec, nil
}

func (m *Manager) find(id string) *domain.ProductionItem {
	for _, it := range m.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Get returns the job with the given id.
func (m *Manager) Get(id string) (*domain.ProductionItem, error) {
	it := m.find(id)
	if it == nil {
		return nil, fmt.Errorf("production item %q: %w", id, domain.ErrNotFound)
	}
	return it, nil
}

// Items returns the raw queue in insertion order, completed items included.
func (m *Manager) Items() []*domain.ProductionItem {
	out := make([]*domain.ProductionItem, len(m.items))
	copy(out, m.items)
	return out
}

// SortedView returns the active queue ordered by priority rank (urgent
// first) then ascending timeline, with completed items excluded. Each entry
// carries its live recipe-derived figures.
func (m *Manager) SortedView() []View {
	active := make([]*domain.ProductionItem, 0, len(m.items))
	for _, it := range m.items {
		if it.Status == domain.ProductionCompleted {
			continue
		}
		active = append(active, it)
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority.Rank() != active[j].Priority.Rank() {
			return active[i].Priority.Rank() < active[j].Priority.Rank()
		}
		return active[i].Timeline.Before(active[j].Timeline)
	})
	views := make([]View, 0, len(active))
	for _, it := range active {
		views = append(views, m.viewOf(it))
	}
	return views
}

// ViewOf returns the derived view for a single job.
func (m *Manager) ViewOf(id string) (*View, error) {
	it := m.find(id)
	if it == nil {
		return nil, fmt.Errorf("production item %q: %w", id, domain.ErrNotFound)
	}
	v := m.viewOf(it)
	return &v, nil
}

func (m *Manager) viewOf(it *domain.ProductionItem) View {
	v := View{Item: it, Name: it.ItemID, MaterialsStatus: domain.MaterialsUnknown}
	rec := m.recipes.Find(it.ItemID)
	if rec == nil {
		v.EstimatedCost = decimal.Zero
		v.EstimatedValue = decimal.Zero
		v.EstimatedProfit = decimal.Zero
		return v
	}
	qty := decimal.NewFromInt(int64(it.Quantity))
	v.Name = rec.Name
	v.EstimatedCost = m.resolver.Cost(rec).Mul(qty)
	v.EstimatedValue = rec.Value.Mul(decimal.NewFromInt(int64(rec.OutputQuantity))).Mul(qty)
	v.EstimatedProfit = v.EstimatedValue.Sub(v.EstimatedCost)
	v.EstimatedTime = rec.CraftingTime * it.Quantity
	v.MissingMaterials = m.resolver.MissingMaterials(rec, it.Quantity)
	if len(v.MissingMaterials) == 0 {
		v.MaterialsStatus = domain.MaterialsReady
	} else {
		v.MaterialsStatus = domain.MaterialsMissing
	}
	return v
}

// Update edits a queued job in place. Feasibility is not re-validated
// until the next read.
func (m *Manager) Update(id string, params UpdateParams) (*domain.ProductionItem, error) {
	it := m.find(id)
	if it == nil {
		return nil, fmt.Errorf("production item %q: %w", id, domain.ErrNotFound)
	}
	if params.Quantity != nil {
		if *params.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, *params.Quantity)
		}
		it.Quantity = *params.Quantity
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, *params.Priority)
		}
		it.Priority = *params.Priority
	}
	if params.Timeline != nil {
		it.Timeline = *params.Timeline
	}
	return it, nil
}

// Remove deletes a job regardless of its status.
func (m *Manager) Remove(id string) error {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("production item %q: %w", id, domain.ErrNotFound)
}

// StartProduction executes a queued job through the crafting engine. The
// job must be materially ready; on success it is marked completed and the
// craft result surfaced.
func (m *Manager) StartProduction(ctx context.Context, id string) (*crafting.Result, error) {
	log := logger.FromContext(ctx)
	it := m.find(id)
	if it == nil {
		return nil, fmt.Errorf("production item %q: %w", id, domain.ErrNotFound)
	}
	rec := m.recipes.Find(it.ItemID)
	if rec == nil {
		return nil, fmt.Errorf("recipe %q: %w", it.ItemID, domain.ErrNotFound)
	}
	if missing := m.resolver.MissingMaterials(rec, it.Quantity); len(missing) > 0 {
		log.Warn("Production blocked on materials", "item", rec.Name, "missing", len(missing))
		return nil, &domain.InsufficientMaterialsError{RecipeName: rec.Name, Missing: missing}
	}
	result, err := m.crafter.Craft(ctx, it.ItemID, it.Quantity)
	if err != nil {
		return nil, err
	}
	it.Status = domain.ProductionCompleted
	log.Info("Production completed", "item", rec.Name, "produced", result.Quantity)
	return result, nil
}

// Replace swaps the entire queue, used when restoring a snapshot.
func (m *Manager) Replace(items []domain.ProductionItem) {
	m.items = make([]*domain.ProductionItem, 0, len(items))
	for i := range items {
		rec := items[i]
		m.items = append(m.items, &rec)
	}
}
