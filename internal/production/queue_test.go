package production

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func newTestQueue(t *testing.T) (*Manager, *inventory.Store) {
	t.Helper()
	inv := inventory.NewStore()
	_, err := inv.AddMaterial(domain.Material{ID: "iron-ore", Name: "Iron Ore", Quantity: 15, Cost: dec("0.60"), Category: domain.MaterialMetal})
	require.NoError(t, err)
	_, err = inv.AddMaterial(domain.Material{ID: "coal", Name: "Coal", Quantity: 15, Cost: dec("0.50"), Category: domain.MaterialFuel})
	require.NoError(t, err)

	recipes := recipe.NewStore()
	_, err = recipes.Add(domain.Recipe{
		ID: "iron-bar", Name: "Iron Bar", OutputQuantity: 5, CraftingTime: 5, Value: dec("1.00"),
		Ingredients: []domain.Ingredient{
			{ID: "iron-ore", Quantity: 5},
			{ID: "coal", Quantity: 2},
		},
	})
	require.NoError(t, err)

	resolver := recipe.NewResolver(inv, recipes)
	crafter := crafting.NewService(inv, recipes, resolver, ledger.NewLedger())
	mgr := NewManager(recipes, resolver, crafter)

	seq := 0
	mgr.newID = func() string {
		seq++
		return fmt.Sprintf("gen-%d", seq)
	}
	return mgr, inv
}

func addJob(t *testing.T, mgr *Manager, id string, priority domain.Priority, timeline time.Time, status domain.ProductionStatus) {
	t.Helper()
	_, err := mgr.Add(domain.ProductionItem{
		ID:       id,
		ItemID:   "iron-bar",
		Quantity: 1,
		Priority: priority,
		Timeline: timeline,
		Status:   status,
	})
	require.NoError(t, err)
}

func TestAdd_DefaultsAndGeneratedID(t *testing.T) {
	mgr, _ := newTestQueue(t)

	item, err := mgr.Add(domain.ProductionItem{ItemID: "iron-bar", Quantity: 2})

	require.NoError(t, err)
	assert.Equal(t, "gen-1", item.ID)
	assert.Equal(t, domain.PriorityNormal, item.Priority)
	assert.Equal(t, domain.ProductionPending, item.Status)
}

func TestAdd_DuplicateID(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "job-1", domain.PriorityNormal, day(1), domain.ProductionPending)

	_, err := mgr.Add(domain.ProductionItem{ID: "job-1", ItemID: "iron-bar", Quantity: 1})

	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestAdd_Validation(t *testing.T) {
	mgr, _ := newTestQueue(t)

	_, err := mgr.Add(domain.ProductionItem{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "missing recipe id")

	_, err = mgr.Add(domain.ProductionItem{ItemID: "iron-bar", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "non-positive quantity")

	_, err = mgr.Add(domain.ProductionItem{ItemID: "iron-bar", Quantity: 1, Priority: "someday"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown priority")
}

func TestSortedView_PriorityThenTimeline(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "late-normal", domain.PriorityNormal, day(9), domain.ProductionPending)
	addJob(t, mgr, "urgent", domain.PriorityUrgent, day(20), domain.ProductionPending)
	addJob(t, mgr, "early-normal", domain.PriorityNormal, day(2), domain.ProductionReady)
	addJob(t, mgr, "high", domain.PriorityHigh, day(15), domain.ProductionPending)

	view := mgr.SortedView()

	require.Len(t, view, 4)
	assert.Equal(t, "urgent", view[0].Item.ID, "urgent sorts first even with the latest timeline")
	assert.Equal(t, "high", view[1].Item.ID)
	assert.Equal(t, "early-normal", view[2].Item.ID)
	assert.Equal(t, "late-normal", view[3].Item.ID)
}

func TestSortedView_ExcludesCompleted(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "done", domain.PriorityUrgent, day(1), domain.ProductionCompleted)
	addJob(t, mgr, "open", domain.PriorityNormal, day(2), domain.ProductionPending)

	view := mgr.SortedView()

	require.Len(t, view, 1)
	assert.Equal(t, "open", view[0].Item.ID)
	assert.Len(t, mgr.Items(), 2, "completed items stay in the underlying collection")
}

func TestView_DerivedFigures(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "job-1", domain.PriorityNormal, day(1), domain.ProductionPending)

	view, err := mgr.ViewOf("job-1")

	require.NoError(t, err)
	assert.Equal(t, "Iron Bar", view.Name)
	assert.Equal(t, "4", view.EstimatedCost.String())
	assert.Equal(t, "5", view.EstimatedValue.String())
	assert.Equal(t, "1", view.EstimatedProfit.String())
	assert.Equal(t, 5, view.EstimatedTime)
	assert.Equal(t, domain.MaterialsReady, view.MaterialsStatus)
}

func TestView_MissingMaterials(t *testing.T) {
	mgr, _ := newTestQueue(t)
	_, err := mgr.Add(domain.ProductionItem{ID: "big", ItemID: "iron-bar", Quantity: 4, Timeline: day(1)})
	require.NoError(t, err)

	view, err := mgr.ViewOf("big")

	require.NoError(t, err)
	assert.Equal(t, domain.MaterialsMissing, view.MaterialsStatus)
	require.Len(t, view.MissingMaterials, 1)
	assert.Equal(t, "iron-ore", view.MissingMaterials[0].ID)
}

func TestView_UnknownRecipe(t *testing.T) {
	mgr, _ := newTestQueue(t)
	_, err := mgr.Add(domain.ProductionItem{ID: "ghost", ItemID: "vanished-recipe", Quantity: 1, Timeline: day(1)})
	require.NoError(t, err)

	view, err := mgr.ViewOf("ghost")

	require.NoError(t, err)
	assert.Equal(t, domain.MaterialsUnknown, view.MaterialsStatus)
	assert.True(t, view.EstimatedCost.IsZero())
	assert.Equal(t, "vanished-recipe", view.Name, "falls back to the recipe id as display name")
}

func TestUpdate_PartialEdit(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "job-1", domain.PriorityNormal, day(1), domain.ProductionPending)

	qty := 3
	prio := domain.PriorityUrgent
	item, err := mgr.Update("job-1", UpdateParams{Quantity: &qty, Priority: &prio})

	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, domain.PriorityUrgent, item.Priority)
	assert.Equal(t, day(1), item.Timeline, "unset fields stay untouched")
}

func TestUpdate_InvalidQuantity(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "job-1", domain.PriorityNormal, day(1), domain.ProductionPending)

	qty := 0
	_, err := mgr.Update("job-1", UpdateParams{Quantity: &qty})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, mgr.Items()[0].Quantity)
}

func TestRemove_AnyStatus(t *testing.T) {
	mgr, _ := newTestQueue(t)
	addJob(t, mgr, "done", domain.PriorityNormal, day(1), domain.ProductionCompleted)

	require.NoError(t, mgr.Remove("done"))
	assert.Empty(t, mgr.Items())
	assert.ErrorIs(t, mgr.Remove("done"), domain.ErrNotFound)
}

func TestStartProduction_ExecutesCraftAndCompletes(t *testing.T) {
	mgr, inv := newTestQueue(t)
	addJob(t, mgr, "job-1", domain.PriorityNormal, day(1), domain.ProductionPending)

	result, err := mgr.StartProduction(context.Background(), "job-1")

	require.NoError(t, err)
	assert.Equal(t, 5, result.Quantity)
	assert.Equal(t, 10, inv.FindMaterial("iron-ore").Quantity)

	item, err := mgr.Get("job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProductionCompleted, item.Status)
	assert.Empty(t, mgr.SortedView(), "completed job leaves the active view")
}

func TestStartProduction_BlockedOnMaterials(t *testing.T) {
	mgr, inv := newTestQueue(t)
	_, err := mgr.Add(domain.ProductionItem{ID: "big", ItemID: "iron-bar", Quantity: 4, Timeline: day(1)})
	require.NoError(t, err)

	_, err = mgr.StartProduction(context.Background(), "big")

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 15, inv.FindMaterial("iron-ore").Quantity, "failed start must not consume stock")

	item, getErr := mgr.Get("big")
	require.NoError(t, getErr)
	assert.Equal(t, domain.ProductionPending, item.Status)
}

func TestStartProduction_UnknownJobAndRecipe(t *testing.T) {
	mgr, _ := newTestQueue(t)

	_, err := mgr.StartProduction(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = mgr.Add(domain.ProductionItem{ID: "ghost", ItemID: "vanished-recipe", Quantity: 1, Timeline: day(1)})
	require.NoError(t, err)
	_, err = mgr.StartProduction(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
