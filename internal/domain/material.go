package domain

import "github.com/shopspring/decimal"

// MaterialCategory classifies raw stock.
type MaterialCategory string

const (
	MaterialRaw   MaterialCategory = "raw"
	MaterialMetal MaterialCategory = "metal"
	MaterialFuel  MaterialCategory = "fuel"
	MaterialOther MaterialCategory = "other"
)

// StockStatus describes how healthy an item's stock level is relative to
// the configured low-stock threshold.
type StockStatus string

const (
	StockOut    StockStatus = "out"
	StockLow    StockStatus = "low"
	StockNormal StockStatus = "normal"
)

// Material is a raw stock unit consumed by recipes.
type Material struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Quantity int              `json:"quantity"`
	Cost     decimal.Decimal  `json:"cost"`
	Category MaterialCategory `json:"category"`
}

// TotalValue returns quantity x unit cost.
func (m *Material) TotalValue() decimal.Decimal {
	return m.Cost.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// Status derives the stock status for the given low-stock threshold.
func (m *Material) Status(lowStockThreshold int) StockStatus {
	return stockStatus(m.Quantity, lowStockThreshold)
}

func stockStatus(quantity, threshold int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= threshold:
		return StockLow
	default:
		return StockNormal
	}
}
