package snapshot_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/contract"
	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/pricing"
	"github.com/anvilworks/forgeledger/internal/production"
	"github.com/anvilworks/forgeledger/internal/recipe"
	"github.com/anvilworks/forgeledger/internal/seed"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

func newTestStores() snapshot.Stores {
	settings := domain.DefaultSettings()
	inv := inventory.NewStore()
	recipes := recipe.NewStore()
	resolver := recipe.NewResolver(inv, recipes)
	led := ledger.NewLedger()
	crafter := crafting.NewService(inv, recipes, resolver, led)
	queue := production.NewManager(recipes, resolver, crafter)
	return snapshot.Stores{
		Settings:  &settings,
		Inventory: inv,
		Recipes:   recipes,
		Pricing:   pricing.NewList(),
		Queue:     queue,
		Ledger:    led,
		Contracts: contract.NewService(inv, recipes, resolver, queue),
	}
}

func TestRoundTrip_PreservesEveryField(t *testing.T) {
	// ARRANGE
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	original := seed.Document(now)
	original.Contracts = []domain.Contract{{
		ID:     "ct-1",
		Name:   "Armory order",
		Client: "Garrison",
		Items: []domain.ContractItem{
			{ItemID: "pickaxe", Quantity: 3},
		},
		AdditionalCosts: decimal.RequireFromString("1.25"),
		Status:          domain.ContractPending,
		Deadline:        &now,
		CreatedAt:       now,
	}}
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")

	stores := newTestStores()
	snapshot.Restore(original, stores)

	// ACT
	require.NoError(t, snapshot.Save(path, snapshot.Capture(stores)))

	loaded, err := snapshot.Load(path)
	require.NoError(t, err)

	fresh := newTestStores()
	snapshot.Restore(loaded, fresh)
	reloaded := snapshot.Capture(fresh)

	// ASSERT
	want, err := json.Marshal(original)
	require.NoError(t, err)
	got, err := json.Marshal(reloaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestRoundTrip_DecimalFidelity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stores := newTestStores()
	snapshot.Restore(seed.Document(now), stores)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, snapshot.Save(path, snapshot.Capture(stores)))

	loaded, err := snapshot.Load(path)
	require.NoError(t, err)

	require.NotEmpty(t, loaded.Inventory)
	wood := loaded.Inventory[0]
	assert.Equal(t, "wood-logs", wood.ID)
	assert.True(t, wood.Cost.Equal(decimal.RequireFromString("2.00")), "cost survives the round trip, got %s", wood.Cost)
}

func TestCapture_EmptyShopSerializesArrays(t *testing.T) {
	stores := newTestStores()

	data, err := json.Marshal(snapshot.Capture(stores))
	require.NoError(t, err)

	for _, key := range []string{"inventory", "craftedItems", "recipes", "pricing", "production", "salesHistory", "contracts"} {
		assert.Contains(t, string(data), fmt.Sprintf("%q:[]", key))
	}
}

func TestValidate_AcceptsSeedDocument(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, snapshot.Validate(seed.Document(now)))
}

func TestValidate_RejectsBrokenDocuments(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(doc *snapshot.Document)
	}{
		{
			name:   "recipe with zero output quantity",
			mutate: func(doc *snapshot.Document) { doc.Recipes[0].OutputQuantity = 0 },
		},
		{
			name:   "recipe with nonpositive crafting time",
			mutate: func(doc *snapshot.Document) { doc.Recipes[0].CraftingTime = 0 },
		},
		{
			name:   "ingredient without an id",
			mutate: func(doc *snapshot.Document) { doc.Recipes[0].Ingredients[0].ID = "" },
		},
		{
			name:   "material with negative quantity",
			mutate: func(doc *snapshot.Document) { doc.Inventory[0].Quantity = -1 },
		},
		{
			name:   "crafted item with negative cost",
			mutate: func(doc *snapshot.Document) { doc.CraftedItems[0].Cost = decimal.RequireFromString("-1") },
		},
		{
			name:   "price entry without an id",
			mutate: func(doc *snapshot.Document) { doc.Pricing[0].ID = "" },
		},
		{
			name:   "production item with unknown priority",
			mutate: func(doc *snapshot.Document) { doc.Production[0].Priority = "whenever" },
		},
		{
			name:   "production item with unknown status",
			mutate: func(doc *snapshot.Document) { doc.Production[0].Status = "paused" },
		},
		{
			name: "transaction with unknown type",
			mutate: func(doc *snapshot.Document) {
				doc.SalesHistory = []domain.Transaction{{ID: "tx-1", Type: "refund", Date: now}}
			},
		},
		{
			name: "contract with unknown status",
			mutate: func(doc *snapshot.Document) {
				doc.Contracts = []domain.Contract{{ID: "ct-1", Status: "open", CreatedAt: now}}
			},
		},
		{
			name: "contract item with zero quantity",
			mutate: func(doc *snapshot.Document) {
				doc.Contracts = []domain.Contract{{
					ID:        "ct-1",
					Status:    domain.ContractPending,
					Items:     []domain.ContractItem{{ItemID: "pickaxe", Quantity: 0}},
					CreatedAt: now,
				}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := seed.Document(now)
			tt.mutate(doc)

			assert.ErrorIs(t, snapshot.Validate(doc), domain.ErrInvalidInput)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := snapshot.Load(filepath.Join(t.TempDir(), "absent.json"))

	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := snapshot.Load(path)

	require.Error(t, err)
	assert.NotErrorIs(t, err, snapshot.ErrNoSnapshot)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	stores := newTestStores()

	require.NoError(t, snapshot.Save(path, snapshot.Capture(stores)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snapshot.json", entries[0].Name())
}
