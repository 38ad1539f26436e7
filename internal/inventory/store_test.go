package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/domain"
)

func testMaterial(id string, quantity int, cost string) domain.Material {
	return domain.Material{
		ID:       id,
		Name:     id,
		Quantity: quantity,
		Cost:     decimal.RequireFromString(cost),
		Category: domain.MaterialRaw,
	}
}

func testCraftedItem(id string, quantity int, cost, value string) domain.CraftedItem {
	return domain.CraftedItem{
		ID:       id,
		Name:     id,
		Quantity: quantity,
		Cost:     decimal.RequireFromString(cost),
		Value:    decimal.RequireFromString(value),
		Category: domain.CraftedMisc,
	}
}

func TestAddMaterial_New(t *testing.T) {
	store := NewStore()

	m, err := store.AddMaterial(testMaterial("iron-ore", 15, "0.60"))

	require.NoError(t, err)
	assert.Equal(t, 15, m.Quantity)
	assert.Len(t, store.Materials(), 1)
}

func TestAddMaterial_MergesQuantityAndOverwritesCost(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("iron-ore", 15, "0.60"))
	require.NoError(t, err)

	m, err := store.AddMaterial(testMaterial("iron-ore", 10, "0.75"))

	require.NoError(t, err)
	assert.Equal(t, 25, m.Quantity, "quantities should add on merge")
	assert.Equal(t, "0.75", m.Cost.String(), "incoming cost should win")
	assert.Len(t, store.Materials(), 1, "merge must not create a second record")
}

func TestAddMaterial_RejectsMissingIDAndNegativeQuantity(t *testing.T) {
	store := NewStore()

	_, err := store.AddMaterial(domain.Material{Name: "Iron Ore"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.AddMaterial(testMaterial("iron-ore", -1, "0.60"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, store.Materials())
}

func TestRemoveMaterial_DecrementsInPlace(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("coal", 15, "0.50"))
	require.NoError(t, err)

	m, err := store.RemoveMaterial("coal", 6)

	require.NoError(t, err)
	assert.Equal(t, 9, m.Quantity)
	assert.Equal(t, 9, store.FindMaterial("coal").Quantity)
}

func TestRemoveMaterial_InsufficientStockLeavesStateUntouched(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("coal", 5, "0.50"))
	require.NoError(t, err)

	_, err = store.RemoveMaterial("coal", 6)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, store.FindMaterial("coal").Quantity, "failed removal must not mutate stock")
}

func TestRemoveMaterial_UnknownID(t *testing.T) {
	store := NewStore()

	_, err := store.RemoveMaterial("mithril", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveMaterial_RejectsNonPositiveQuantity(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("coal", 5, "0.50"))
	require.NoError(t, err)

	_, err = store.RemoveMaterial("coal", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = store.RemoveMaterial("coal", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddCraftedItem_MergeOverwritesCostAndValue(t *testing.T) {
	store := NewStore()
	_, err := store.AddCraftedItem(testCraftedItem("iron-bar", 10, "0.40", "1.00"))
	require.NoError(t, err)

	c, err := store.AddCraftedItem(testCraftedItem("iron-bar", 5, "0.50", "1.20"))

	require.NoError(t, err)
	assert.Equal(t, 15, c.Quantity)
	assert.Equal(t, "0.5", c.Cost.String())
	assert.Equal(t, "1.2", c.Value.String())
}

func TestIncrementCraftedItem_AddsStockAndBumpsVersion(t *testing.T) {
	store := NewStore()
	_, err := store.AddCraftedItem(testCraftedItem("iron-bar", 10, "0.40", "1.00"))
	require.NoError(t, err)
	v := store.Version()

	c, err := store.IncrementCraftedItem("iron-bar", 5)

	require.NoError(t, err)
	assert.Equal(t, 15, c.Quantity)
	assert.Equal(t, "0.4", c.Cost.String(), "increment must not touch the cost snapshot")
	assert.Equal(t, "1", c.Value.String())
	assert.Greater(t, store.Version(), v, "increment counts as a mutation")
}

func TestIncrementCraftedItem_UnknownIDAndNonPositiveQuantity(t *testing.T) {
	store := NewStore()
	_, err := store.AddCraftedItem(testCraftedItem("iron-bar", 10, "0.40", "1.00"))
	require.NoError(t, err)

	_, err = store.IncrementCraftedItem("mithril-bar", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.IncrementCraftedItem("iron-bar", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 10, store.FindCraftedItem("iron-bar").Quantity)
}

func TestDeleteMaterial_RemovesRecord(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("clay", 12, "0.25"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteMaterial("clay"))

	assert.Nil(t, store.FindMaterial("clay"))
	assert.ErrorIs(t, store.DeleteMaterial("clay"), domain.ErrNotFound)
}

func TestDeleteCraftedItem_RemovesRecord(t *testing.T) {
	store := NewStore()
	_, err := store.AddCraftedItem(testCraftedItem("nails", 25, "0.08", "0.30"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteCraftedItem("nails"))

	assert.Nil(t, store.FindCraftedItem("nails"))
}

func TestMaterials_PreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"wood-logs", "iron-ore", "coal"} {
		_, err := store.AddMaterial(testMaterial(id, 1, "1.00"))
		require.NoError(t, err)
	}

	materials := store.Materials()

	require.Len(t, materials, 3)
	assert.Equal(t, "wood-logs", materials[0].ID)
	assert.Equal(t, "iron-ore", materials[1].ID)
	assert.Equal(t, "coal", materials[2].ID)
}

func TestVersion_BumpsOnEveryMutation(t *testing.T) {
	store := NewStore()
	v0 := store.Version()

	_, err := store.AddMaterial(testMaterial("iron-ore", 15, "0.60"))
	require.NoError(t, err)
	v1 := store.Version()
	assert.Greater(t, v1, v0)

	_, err = store.RemoveMaterial("iron-ore", 5)
	require.NoError(t, err)
	assert.Greater(t, store.Version(), v1)
}

func TestVersion_UnchangedByReads(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("iron-ore", 15, "0.60"))
	require.NoError(t, err)
	v := store.Version()

	store.Materials()
	store.FindMaterial("iron-ore")
	store.CraftedItems()

	assert.Equal(t, v, store.Version())
}

func TestReplace_SwapsContents(t *testing.T) {
	store := NewStore()
	_, err := store.AddMaterial(testMaterial("clay", 12, "0.25"))
	require.NoError(t, err)
	v := store.Version()

	store.Replace(
		[]domain.Material{testMaterial("iron-ore", 15, "0.60")},
		[]domain.CraftedItem{testCraftedItem("iron-bar", 10, "0.40", "1.00")},
	)

	assert.Nil(t, store.FindMaterial("clay"))
	require.NotNil(t, store.FindMaterial("iron-ore"))
	require.NotNil(t, store.FindCraftedItem("iron-bar"))
	assert.Greater(t, store.Version(), v, "replace counts as a mutation")
}
