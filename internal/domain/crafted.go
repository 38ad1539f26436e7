package domain

import "github.com/shopspring/decimal"

// CraftedCategory classifies finished goods.
type CraftedCategory string

const (
	CraftedMisc    CraftedCategory = "misc"
	CraftedTools   CraftedCategory = "tools"
	CraftedWeapons CraftedCategory = "weapons"
	CraftedMetal   CraftedCategory = "metal"
	// CraftedCrafted is assigned to items first created by the crafting
	// engine rather than entered by hand.
	CraftedCrafted CraftedCategory = "crafted"
)

// CraftedItem is a finished-good stock unit. It is produced by recipes and
// may itself be consumed as an ingredient of other recipes.
type CraftedItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
	Value    decimal.Decimal `json:"value"`
	Category CraftedCategory `json:"category"`
}

// TotalValue returns quantity x sale value.
func (c *CraftedItem) TotalValue() decimal.Decimal {
	return c.Value.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Profit returns sale value minus production cost for a single unit.
func (c *CraftedItem) Profit() decimal.Decimal {
	return c.Value.Sub(c.Cost)
}

// ProfitMargin returns the revenue-based margin as a percentage.
// Zero when the sale value is zero.
func (c *CraftedItem) ProfitMargin() decimal.Decimal {
	if c.Value.IsZero() {
		return decimal.Zero
	}
	return c.Profit().Div(c.Value).Mul(decimal.NewFromInt(100))
}

// Status derives the stock status for the given low-stock threshold.
func (c *CraftedItem) Status(lowStockThreshold int) StockStatus {
	return stockStatus(c.Quantity, lowStockThreshold)
}
