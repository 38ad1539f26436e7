package recipe

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
)

// costCacheSize bounds the resolved-cost cache. Shops carry tens of
// recipes, so evictions only happen under pathological catalogs.
const costCacheSize = 256

// IngredientCost is one resolved line of a recipe's cost breakdown.
type IngredientCost struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	LineCost   decimal.Decimal `json:"lineCost"`
	Unresolved bool            `json:"unresolved,omitempty"`
}

type costEntry struct {
	invVersion uint64
	recVersion uint64
	cost       decimal.Decimal
}

// Resolver computes recipe cost, profitability and feasibility against the
// current inventory. Costs are a live view: a material price edit changes
// every dependent recipe's cost on the next read. The internal cache is
// fenced by the store version counters, so it never serves a value computed
// before the latest mutation.
type Resolver struct {
	inv     *inventory.Store
	recipes *Store
	costs   *lru.Cache[string, costEntry]
}

// NewResolver creates a resolver over the given stores.
func NewResolver(inv *inventory.Store, recipes *Store) *Resolver {
	cache, _ := lru.New[string, costEntry](costCacheSize)
	return &Resolver{inv: inv, recipes: recipes, costs: cache}
}

// available resolves an ingredient id to its stock quantity and display
// name. Materials shadow crafted items with the same id.
func (r *Resolver) available(id string) (quantity int, name string, found bool) {
	if m := r.inv.FindMaterial(id); m != nil {
		return m.Quantity, m.Name, true
	}
	if c := r.inv.FindCraftedItem(id); c != nil {
		return c.Quantity, c.Name, true
	}
	return 0, id, false
}

// ingredientUnitCost resolves the per-unit cost contribution of an
// ingredient: a material contributes its unit cost, a crafted item its sale
// value. Unknown ids contribute zero and are reported as unresolved.
func (r *Resolver) ingredientUnitCost(id string) (cost decimal.Decimal, resolved bool) {
	if m := r.inv.FindMaterial(id); m != nil {
		return m.Cost, true
	}
	if c := r.inv.FindCraftedItem(id); c != nil {
		return c.Value, true
	}
	return decimal.Zero, false
}

// Cost returns the total cost of one craft invocation, resolved live
// against current inventory prices.
func (r *Resolver) Cost(rec *domain.Recipe) decimal.Decimal {
	if entry, ok := r.costs.Get(rec.ID); ok &&
		entry.invVersion == r.inv.Version() && entry.recVersion == r.recipes.Version() {
		return entry.cost
	}
	total := decimal.Zero
	for _, ing := range rec.Ingredients {
		unit, _ := r.ingredientUnitCost(ing.ID)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(ing.Quantity))))
	}
	r.costs.Add(rec.ID, costEntry{invVersion: r.inv.Version(), recVersion: r.recipes.Version(), cost: total})
	return total
}

// CostDetail returns the per-ingredient cost breakdown in declaration
// order, flagging ingredients that resolve to neither inventory.
func (r *Resolver) CostDetail(rec *domain.Recipe) []IngredientCost {
	out := make([]IngredientCost, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		unit, resolved := r.ingredientUnitCost(ing.ID)
		_, name, _ := r.available(ing.ID)
		out = append(out, IngredientCost{
			ID:         ing.ID,
			Name:       name,
			Quantity:   ing.Quantity,
			UnitCost:   unit,
			LineCost:   unit.Mul(decimal.NewFromInt(int64(ing.Quantity))),
			Unresolved: !resolved,
		})
	}
	return out
}

// UnitCost returns cost divided by the recipe yield.
func (r *Resolver) UnitCost(rec *domain.Recipe) decimal.Decimal {
	return r.Cost(rec).Div(decimal.NewFromInt(int64(rec.OutputQuantity)))
}

// Profit returns the profit of one craft invocation: total output value
// minus total cost.
func (r *Resolver) Profit(rec *domain.Recipe) decimal.Decimal {
	return rec.Value.Mul(decimal.NewFromInt(int64(rec.OutputQuantity))).Sub(r.Cost(rec))
}

// UnitProfit returns sale value minus unit cost for a single output unit.
func (r *Resolver) UnitProfit(rec *domain.Recipe) decimal.Decimal {
	return rec.Value.Sub(r.UnitCost(rec))
}

// ProfitMargin returns the revenue-based margin of a single output unit as
// a percentage. Zero when the sale value is zero.
func (r *Resolver) ProfitMargin(rec *domain.Recipe) decimal.Decimal {
	if rec.Value.IsZero() {
		return decimal.Zero
	}
	return r.UnitProfit(rec).Div(rec.Value).Mul(decimal.NewFromInt(100))
}

// CanCraft reports whether every ingredient has enough stock for the given
// number of craft invocations. An ingredient with no matching record is
// treated as zero stock.
func (r *Resolver) CanCraft(rec *domain.Recipe, quantity int) bool {
	for _, ing := range rec.Ingredients {
		have, _, _ := r.available(ing.ID)
		if have < ing.Quantity*quantity {
			return false
		}
	}
	return true
}

// MissingMaterials returns the shortfall report for the given number of
// craft invocations, in ingredient declaration order. Empty exactly when
// CanCraft is true.
func (r *Resolver) MissingMaterials(rec *domain.Recipe, quantity int) []domain.MissingMaterial {
	var missing []domain.MissingMaterial
	for _, ing := range rec.Ingredients {
		required := ing.Quantity * quantity
		have, name, _ := r.available(ing.ID)
		if have < required {
			missing = append(missing, domain.MissingMaterial{
				ID:        ing.ID,
				Name:      name,
				Required:  required,
				Available: have,
				Missing:   required - have,
			})
		}
	}
	return missing
}
