// Package pricing recommends sale prices and keeps the stored price list
// with its last-updated stamps.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
)

// MaxTargetMargin caps the requested margin fraction. A margin of 1 or
// above would make the base price formula divide by zero or go negative,
// so requests are clamped here.
var MaxTargetMargin = decimal.NewFromFloat(0.95)

var (
	minProfitFactor  = decimal.NewFromFloat(1.05) // floor: 5% over cost
	undercutCutoff   = decimal.NewFromFloat(1.10) // only undercut when competitor clears cost by 10%
	undercutFactor   = decimal.NewFromFloat(0.95) // price 5% under the competitor
	decimalOne       = decimal.NewFromInt(1)
	displayPrecision = int32(2)
)

// RecommendPrice computes a sale price from production cost and a target
// margin fraction in [0,1). When a competitor price is supplied and that
// competitor clears our cost by more than 10%, the recommendation undercuts
// them by 5% if that is below the margin-derived base. The result never
// drops below cost x 1.05, guaranteeing a 5% margin over cost regardless of
// competitor pressure. Rounded to 2 decimals for display.
func RecommendPrice(cost, targetMargin decimal.Decimal, competitorPrice *decimal.Decimal) (decimal.Decimal, error) {
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: cost must not be negative", domain.ErrInvalidInput)
	}
	if targetMargin.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: target margin must not be negative", domain.ErrInvalidInput)
	}
	if targetMargin.GreaterThan(MaxTargetMargin) {
		targetMargin = MaxTargetMargin
	}

	price := cost.Div(decimalOne.Sub(targetMargin))

	if competitorPrice != nil && competitorPrice.IsPositive() &&
		competitorPrice.GreaterThan(cost.Mul(undercutCutoff)) {
		undercut := competitorPrice.Mul(undercutFactor)
		if undercut.LessThan(price) {
			price = undercut
		}
	}

	floor := cost.Mul(minProfitFactor)
	if price.LessThan(floor) {
		price = floor
	}
	return price.Round(displayPrecision), nil
}
