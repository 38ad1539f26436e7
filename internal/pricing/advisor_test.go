package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestRecommendPrice_MarginBase(t *testing.T) {
	// 0.80 / (1 - 0.30) = 1.1428... rounds to 1.14
	price, err := RecommendPrice(dec("0.80"), dec("0.30"), nil)

	require.NoError(t, err)
	assert.Equal(t, "1.14", price.String())
}

func TestRecommendPrice_ZeroMarginFloorsAtCostPlusFive(t *testing.T) {
	// Base equals cost, so the 5% floor lifts it
	price, err := RecommendPrice(dec("2.00"), decimal.Zero, nil)

	require.NoError(t, err)
	assert.Equal(t, "2.1", price.String())
}

func TestRecommendPrice_UndercutsClearCompetitor(t *testing.T) {
	// Competitor at 2.00 clears cost x 1.1 = 1.10; undercut 1.90 beats the
	// 50% margin base of 2.00
	price, err := RecommendPrice(dec("1.00"), dec("0.50"), decPtr("2.00"))

	require.NoError(t, err)
	assert.Equal(t, "1.9", price.String())
}

func TestRecommendPrice_IgnoresCompetitorNearCost(t *testing.T) {
	// Competitor at 1.05 does not clear cost x 1.1, so no undercutting
	price, err := RecommendPrice(dec("1.00"), dec("0.50"), decPtr("1.05"))

	require.NoError(t, err)
	assert.Equal(t, "2", price.String())
}

func TestRecommendPrice_UndercutOnlyWhenCheaperThanBase(t *testing.T) {
	// Undercut (4.75) is above the 20% margin base (1.25), so the base wins
	price, err := RecommendPrice(dec("1.00"), dec("0.20"), decPtr("5.00"))

	require.NoError(t, err)
	assert.Equal(t, "1.25", price.String())
}

func TestRecommendPrice_FloorBeatsAggressiveUndercut(t *testing.T) {
	// Competitor at 1.11 clears the cutoff; undercut 1.0545 is beneath the
	// floor of 1.05 x cost, so the floor wins
	price, err := RecommendPrice(dec("1.00"), decimal.Zero, decPtr("1.11"))

	require.NoError(t, err)
	assert.Equal(t, "1.05", price.String())
}

func TestRecommendPrice_ClampsExcessiveMargin(t *testing.T) {
	// A margin of 0.99 clamps to 0.95: 1.00 / 0.05 = 20
	price, err := RecommendPrice(dec("1.00"), dec("0.99"), nil)

	require.NoError(t, err)
	assert.Equal(t, "20", price.String())
}

func TestRecommendPrice_ZeroCost(t *testing.T) {
	price, err := RecommendPrice(decimal.Zero, dec("0.50"), nil)

	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestRecommendPrice_RejectsNegativeInputs(t *testing.T) {
	_, err := RecommendPrice(dec("-1.00"), dec("0.30"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = RecommendPrice(dec("1.00"), dec("-0.30"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
