package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds shop-wide configuration carried in the persisted snapshot.
// LowStockThreshold feeds stock-status derivation; Currency and TaxRate are
// display concerns supplied to the UI layer.
type Settings struct {
	ShopName          string  `json:"shopName"`
	Currency          string  `json:"currency"`
	TaxRate           float64 `json:"taxRate"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	Theme             string  `json:"theme"`
	Animations        bool    `json:"animations"`
}

// DefaultSettings returns the out-of-the-box shop settings.
func DefaultSettings() Settings {
	return Settings{
		ShopName:          "My Blacksmith Shop",
		Currency:          "$",
		TaxRate:           8,
		LowStockThreshold: 10,
		Theme:             "light",
		Animations:        true,
	}
}

// PriceEntry is a stored sale price for a crafted item, stamped whenever
// the price is changed.
type PriceEntry struct {
	ID          string          `json:"id"`
	Price       decimal.Decimal `json:"price"`
	LastUpdated time.Time       `json:"lastUpdated"`
}
