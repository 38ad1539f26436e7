package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/domain"
)

func newTestList(now time.Time) *List {
	l := NewList()
	l.now = func() time.Time { return now }
	return l
}

func TestSet_InsertsAndStamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	list := newTestList(now)

	entry, err := list.Set("pickaxe", dec("10.00"))

	require.NoError(t, err)
	assert.Equal(t, "pickaxe", entry.ID)
	assert.Equal(t, now, entry.LastUpdated)
	assert.Len(t, list.Entries(), 1)
}

func TestSet_UpdatesInPlaceWithNewStamp(t *testing.T) {
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	list := newTestList(first)
	_, err := list.Set("pickaxe", dec("10.00"))
	require.NoError(t, err)

	second := first.AddDate(0, 0, 3)
	list.now = func() time.Time { return second }
	entry, err := list.Set("pickaxe", dec("11.50"))

	require.NoError(t, err)
	assert.Equal(t, "11.5", entry.Price.String())
	assert.Equal(t, second, entry.LastUpdated)
	assert.Len(t, list.Entries(), 1, "update must not create a second entry")
}

func TestSet_Validation(t *testing.T) {
	list := newTestList(time.Now())

	_, err := list.Set("", dec("1.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = list.Set("pickaxe", dec("-1.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplace_SwapsEntries(t *testing.T) {
	list := newTestList(time.Now())
	_, err := list.Set("pickaxe", dec("10.00"))
	require.NoError(t, err)

	list.Replace([]domain.PriceEntry{{ID: "nails", Price: dec("0.30")}})

	assert.Nil(t, list.Find("pickaxe"))
	require.NotNil(t, list.Find("nails"))
}
