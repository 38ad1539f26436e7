// Package crafting executes craft operations: feasibility-checked,
// all-or-nothing conversion of ingredient stock into crafted output, with a
// ledger entry for every successful craft.
package crafting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/metrics"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// Result describes a completed craft: units produced and the money figures
// at craft time.
type Result struct {
	ItemID   string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Value    decimal.Decimal `json:"value"`
	Profit   decimal.Decimal `json:"profit"`
}

// Service defines the interface for crafting operations.
type Service interface {
	Craft(ctx context.Context, recipeID string, quantity int) (*Result, error)
}

type service struct {
	inv      *inventory.Store
	recipes  *recipe.Store
	resolver *recipe.Resolver
	ledger   *ledger.Ledger
	now      func() time.Time
	newID    func() string
}

// NewService creates a new crafting service.
func NewService(inv *inventory.Store, recipes *recipe.Store, resolver *recipe.Resolver, led *ledger.Ledger) Service {
	return &service{
		inv:      inv,
		recipes:  recipes,
		resolver: resolver,
		ledger:   led,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Craft executes the recipe the given number of times. The feasibility
// check runs before any mutation; on failure the inventory is untouched and
// the error carries the full shortage report. On success ingredient stock
// is decremented in declaration order, the output crafted item is
// incremented (created on first craft with a cost snapshot of the current
// unit cost), and a craft transaction is appended to the ledger.
func (s *service) Craft(ctx context.Context, recipeID string, quantity int) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Craft called", "recipe", recipeID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}

	rec := s.recipes.Find(recipeID)
	if rec == nil {
		log.Warn("Recipe not found", "recipe", recipeID)
		return nil, fmt.Errorf("recipe %q: %w", recipeID, domain.ErrNotFound)
	}

	if !s.resolver.CanCraft(rec, quantity) {
		missing := s.resolver.MissingMaterials(rec, quantity)
		log.Warn("Insufficient materials", "recipe", rec.Name, "missing", len(missing))
		return nil, &domain.InsufficientMaterialsError{RecipeName: rec.Name, Missing: missing}
	}

	// Money figures are fixed before consumption so the result reflects
	// the prices the craft was decided on.
	totalCost := s.resolver.Cost(rec).Mul(decimal.NewFromInt(int64(quantity)))
	unitCost := s.resolver.UnitCost(rec)
	produced := rec.OutputQuantity * quantity
	totalValue := rec.Value.Mul(decimal.NewFromInt(int64(produced)))

	// The feasibility check above guarantees every decrement succeeds, so
	// the loop cannot partially fail. Consumption follows ingredient
	// declaration order; materials shadow crafted items on id collisions.
	for _, ing := range rec.Ingredients {
		needed := ing.Quantity * quantity
		if m := s.inv.FindMaterial(ing.ID); m != nil {
			if _, err := s.inv.RemoveMaterial(ing.ID, needed); err != nil {
				return nil, fmt.Errorf("consume material %q: %w", ing.ID, err)
			}
			continue
		}
		if _, err := s.inv.RemoveCraftedItem(ing.ID, needed); err != nil {
			return nil, fmt.Errorf("consume crafted item %q: %w", ing.ID, err)
		}
	}

	if existing := s.inv.FindCraftedItem(rec.ID); existing != nil {
		if _, err := s.inv.IncrementCraftedItem(rec.ID, produced); err != nil {
			return nil, fmt.Errorf("add crafted item %q: %w", rec.ID, err)
		}
	} else {
		_, err := s.inv.AddCraftedItem(domain.CraftedItem{
			ID:       rec.ID,
			Name:     rec.Name,
			Quantity: produced,
			Cost:     unitCost,
			Value:    rec.Value,
			Category: domain.CraftedCrafted,
		})
		if err != nil {
			return nil, fmt.Errorf("add crafted item %q: %w", rec.ID, err)
		}
	}

	s.ledger.Append(domain.Transaction{
		ID:   s.newID(),
		Type: domain.TransactionCraft,
		Date: s.now(),
		Items: []domain.TransactionLine{
			{ID: rec.ID, Name: rec.Name, Quantity: produced, Value: totalValue},
		},
		TotalValue: totalValue,
	})

	metrics.CraftsTotal.WithLabelValues(rec.ID).Inc()
	metrics.ItemsProduced.WithLabelValues(rec.ID).Add(float64(produced))
	metrics.TransactionsRecorded.WithLabelValues(string(domain.TransactionCraft)).Inc()

	log.Info("Items crafted", "recipe", rec.Name, "produced", produced, "cost", totalCost, "value", totalValue)
	return &Result{
		ItemID:   rec.ID,
		Name:     rec.Name,
		Quantity: produced,
		Cost:     totalCost,
		Value:    totalValue,
		Profit:   totalValue.Sub(totalCost),
	}, nil
}
