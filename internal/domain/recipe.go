package domain

import "github.com/shopspring/decimal"

// Ingredient is a single material requirement of a recipe. The ID may
// reference either a Material or a CraftedItem.
type Ingredient struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Recipe is a bill of materials: the inputs, yield, crafting time and sale
// value for producing one crafted item. Recipes are definitions, not stock;
// their cost is never stored but resolved live against current inventory.
type Recipe struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	OutputQuantity int             `json:"outputQuantity"`
	CraftingTime   int             `json:"craftingTime"` // minutes per craft invocation
	Ingredients    []Ingredient    `json:"ingredients"`
	Value          decimal.Decimal `json:"value"` // sale value per unit of output
}
