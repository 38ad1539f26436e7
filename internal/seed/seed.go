// Package seed provides the default shop state used when no snapshot
// exists yet, plus a deterministic demo-transaction generator for fresh
// installations.
package seed

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Materials returns the starting raw-material inventory.
func Materials() []domain.Material {
	return []domain.Material{
		{ID: "wood-logs", Name: "Wood Logs", Quantity: 20, Cost: dec("2.00"), Category: domain.MaterialRaw},
		{ID: "iron-ore", Name: "Iron Ore", Quantity: 15, Cost: dec("0.60"), Category: domain.MaterialMetal},
		{ID: "coal", Name: "Coal", Quantity: 15, Cost: dec("0.50"), Category: domain.MaterialFuel},
		{ID: "buck-skin", Name: "Buck Skin", Quantity: 10, Cost: dec("1.00"), Category: domain.MaterialRaw},
		{ID: "copper", Name: "Copper", Quantity: 8, Cost: dec("0.50"), Category: domain.MaterialMetal},
		{ID: "clay", Name: "Clay", Quantity: 12, Cost: dec("0.25"), Category: domain.MaterialRaw},
	}
}

// CraftedItems returns the starting crafted-goods stock.
func CraftedItems() []domain.CraftedItem {
	return []domain.CraftedItem{
		{ID: "iron-bar", Name: "Iron Bar", Quantity: 10, Cost: dec("0.40"), Value: dec("1.00"), Category: domain.CraftedMetal},
		{ID: "nails", Name: "Nails", Quantity: 25, Cost: dec("0.08"), Value: dec("0.30"), Category: domain.CraftedMisc},
		{ID: "pickaxe", Name: "Pickaxe", Quantity: 2, Cost: dec("3.60"), Value: dec("10.00"), Category: domain.CraftedTools},
	}
}

// Recipes returns the starting recipe book.
func Recipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID: "iron-bar", Name: "Iron Bar", OutputQuantity: 5, CraftingTime: 5, Value: dec("1.00"),
			Ingredients: []domain.Ingredient{{ID: "iron-ore", Quantity: 5}, {ID: "coal", Quantity: 2}},
		},
		{
			ID: "nails", Name: "Nails", OutputQuantity: 5, CraftingTime: 3, Value: dec("0.30"),
			Ingredients: []domain.Ingredient{{ID: "iron-bar", Quantity: 1}},
		},
		{
			ID: "shell-casing", Name: "Shell Casing", OutputQuantity: 20, CraftingTime: 10, Value: dec("5.00"),
			Ingredients: []domain.Ingredient{{ID: "iron-bar", Quantity: 5}, {ID: "copper", Quantity: 2}},
		},
		{
			ID: "silver-horseshoes", Name: "Silver Horseshoes", OutputQuantity: 2, CraftingTime: 8, Value: dec("5.00"),
			Ingredients: []domain.Ingredient{{ID: "iron-ore", Quantity: 4}, {ID: "coal", Quantity: 2}},
		},
		{
			ID: "pickaxe", Name: "Pickaxe", OutputQuantity: 1, CraftingTime: 15, Value: dec("10.00"),
			Ingredients: []domain.Ingredient{{ID: "iron-bar", Quantity: 2}, {ID: "wood-logs", Quantity: 1}},
		},
	}
}

// Pricing returns the starting price list, one entry per recipe at its
// sale value.
func Pricing(now time.Time) []domain.PriceEntry {
	return []domain.PriceEntry{
		{ID: "iron-bar", Price: dec("1.00"), LastUpdated: now},
		{ID: "nails", Price: dec("0.30"), LastUpdated: now},
		{ID: "shell-casing", Price: dec("5.00"), LastUpdated: now},
		{ID: "silver-horseshoes", Price: dec("5.00"), LastUpdated: now},
		{ID: "pickaxe", Price: dec("10.00"), LastUpdated: now},
	}
}

// Production returns the starting production queue.
func Production(now time.Time) []domain.ProductionItem {
	return []domain.ProductionItem{
		{
			ID: "seed-prod-1", ItemID: "pickaxe", Quantity: 3,
			Priority: domain.PriorityHigh, Timeline: now.AddDate(0, 0, 1),
			Status: domain.ProductionPending,
		},
		{
			ID: "seed-prod-2", ItemID: "nails", Quantity: 10,
			Priority: domain.PriorityNormal, Timeline: now.AddDate(0, 0, 2),
			Status: domain.ProductionReady,
		},
	}
}

// Document assembles the full default snapshot for a fresh installation.
func Document(now time.Time) *snapshot.Document {
	return &snapshot.Document{
		AppState:     domain.DefaultSettings(),
		Inventory:    Materials(),
		CraftedItems: CraftedItems(),
		Recipes:      Recipes(),
		Pricing:      Pricing(now),
		Production:   Production(now),
		SalesHistory: []domain.Transaction{},
		Contracts:    []domain.Contract{},
	}
}

// DemoTransactions generates a plausible trading history over the given
// number of past days: sales of the seeded crafted goods at their values
// and purchases of the seeded materials at their costs. The generator is
// deterministic for a given rand source.
func DemoTransactions(rnd *rand.Rand, now time.Time, days, count int) []domain.Transaction {
	crafted := CraftedItems()
	materials := Materials()
	out := make([]domain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		age := time.Duration(rnd.Int63n(int64(days) * int64(24*time.Hour)))
		date := now.Add(-age)
		var tx domain.Transaction
		if rnd.Intn(3) != 0 { // sales outnumber purchases two to one
			item := crafted[rnd.Intn(len(crafted))]
			qty := 1 + rnd.Intn(4)
			tx = domain.Transaction{
				Type: domain.TransactionSale,
				Date: date,
				Items: []domain.TransactionLine{
					{ID: item.ID, Name: item.Name, Quantity: qty, Value: item.Value},
				},
				TotalValue: item.Value.Mul(decimal.NewFromInt(int64(qty))),
			}
		} else {
			mat := materials[rnd.Intn(len(materials))]
			qty := 2 + rnd.Intn(9)
			tx = domain.Transaction{
				Type: domain.TransactionPurchase,
				Date: date,
				Items: []domain.TransactionLine{
					{ID: mat.ID, Name: mat.Name, Quantity: qty, Value: mat.Cost},
				},
				TotalValue: mat.Cost.Mul(decimal.NewFromInt(int64(qty))),
			}
		}
		tx.ID = demoID(rnd)
		out = append(out, tx)
	}
	return out
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func demoID(rnd *rand.Rand) string {
	buf := make([]byte, 12)
	for i := range buf {
		buf[i] = idAlphabet[rnd.Intn(len(idAlphabet))]
	}
	return "demo-" + string(buf)
}
