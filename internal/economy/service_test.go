package economy

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEconomy(t *testing.T) (*inventory.Store, *ledger.Ledger, Service) {
	t.Helper()
	inv := inventory.NewStore()
	_, err := inv.AddMaterial(domain.Material{ID: "iron-ore", Name: "Iron Ore", Quantity: 15, Cost: dec("0.60"), Category: domain.MaterialMetal})
	require.NoError(t, err)
	_, err = inv.AddCraftedItem(domain.CraftedItem{ID: "pickaxe", Name: "Pickaxe", Quantity: 2, Cost: dec("3.60"), Value: dec("10.00"), Category: domain.CraftedTools})
	require.NoError(t, err)

	led := ledger.NewLedger()
	svc := NewService(inv, led).(*service)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "tx-1" }
	return inv, led, svc
}

func TestRecordSale_Success(t *testing.T) {
	inv, led, svc := newTestEconomy(t)

	result, err := svc.RecordSale(context.Background(), "pickaxe", 2)

	require.NoError(t, err)
	assert.Equal(t, "20", result.TotalValue.String())
	assert.Equal(t, 0, inv.FindCraftedItem("pickaxe").Quantity)

	transactions := led.All()
	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.Equal(t, domain.TransactionSale, tx.Type)
	require.Len(t, tx.Items, 1)
	assert.Equal(t, "10", tx.Items[0].Value.String(), "sale lines carry the per-unit value")
	assert.Equal(t, "20", tx.TotalValue.String())
}

func TestRecordSale_InsufficientStockLeavesLedgerEmpty(t *testing.T) {
	inv, led, svc := newTestEconomy(t)

	_, err := svc.RecordSale(context.Background(), "pickaxe", 3)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, inv.FindCraftedItem("pickaxe").Quantity)
	assert.Empty(t, led.All())
}

func TestRecordSale_UnknownItem(t *testing.T) {
	_, _, svc := newTestEconomy(t)

	_, err := svc.RecordSale(context.Background(), "ghost", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_RejectsNonPositiveQuantity(t *testing.T) {
	_, _, svc := newTestEconomy(t)

	_, err := svc.RecordSale(context.Background(), "pickaxe", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPurchase_Success(t *testing.T) {
	inv, led, svc := newTestEconomy(t)

	result, err := svc.RecordPurchase(context.Background(), "iron-ore", 10)

	require.NoError(t, err)
	assert.Equal(t, "6", result.TotalCost.String())
	assert.Equal(t, 25, inv.FindMaterial("iron-ore").Quantity)

	transactions := led.All()
	require.Len(t, transactions, 1)
	assert.Equal(t, domain.TransactionPurchase, transactions[0].Type)
	assert.Equal(t, "0.6", transactions[0].Items[0].Value.String())
}

func TestRecordPurchase_UnknownMaterial(t *testing.T) {
	_, led, svc := newTestEconomy(t)

	_, err := svc.RecordPurchase(context.Background(), "mithril", 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, led.All())
}
