// Unit tests for the items repository: value invariant, filters, bulk
// category moves, and totals.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func newItemRepo(t *testing.T) *ItemRepo {
	t.Helper()
	eng, _ := newTestEngine(t)
	return NewItemRepo(eng)
}

func TestCreateItemComputesValue(t *testing.T) {
	repo := newItemRepo(t)

	item, err := repo.CreateItem(types.Item{
		Name:      "M3 screw",
		Quantity:  200,
		UnitValue: 0.04,
		// A supplied value is ignored; the invariant wins.
		Value: 999,
	})
	require.NoError(t, err)
	assert.InDelta(t, 8.0, item.Value, 1e-9)
	assert.False(t, item.CreatedAt.IsZero())
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestUpdateItemRecomputesValue(t *testing.T) {
	repo := newItemRepo(t)
	item, err := repo.CreateItem(types.Item{Name: "bolt", Quantity: 10, UnitValue: 2})
	require.NoError(t, err)

	t.Run("quantity change", func(t *testing.T) {
		got, ok, err := repo.UpdateItem(item.ID, NewRecord().Set("quantity", int64(4)))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(4), got.Quantity)
		assert.InDelta(t, 8.0, got.Value, 1e-9)
	})

	t.Run("unit value change", func(t *testing.T) {
		got, ok, err := repo.UpdateItem(item.ID, NewRecord().Set("unitValue", 3.0))
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 12.0, got.Value, 1e-9)
	})

	t.Run("both in one patch", func(t *testing.T) {
		got, ok, err := repo.UpdateItem(item.ID, NewRecord().
			Set("quantity", int64(5)).
			Set("unitValue", 1.5))
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 7.5, got.Value, 1e-9)
	})

	t.Run("unrelated patch keeps value", func(t *testing.T) {
		got, ok, err := repo.UpdateItem(item.ID, NewRecord().Set("location", "Bin B2"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 7.5, got.Value, 1e-9)
	})
}

func TestGetByCategory(t *testing.T) {
	repo := newItemRepo(t)
	for _, it := range []types.Item{
		{Name: "resistor", Category: "Electronics"},
		{Name: "capacitor", Category: "Electronics"},
		{Name: "screw", Category: "Hardware"},
	} {
		_, err := repo.CreateItem(it)
		require.NoError(t, err)
	}

	got, err := repo.GetByCategory("Electronics")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Sorted by name.
	assert.Equal(t, "capacitor", got[0].Name)
	assert.Equal(t, "resistor", got[1].Name)
}

func TestGetByBarcode(t *testing.T) {
	repo := newItemRepo(t)
	_, err := repo.CreateItem(types.Item{Name: "tape", Barcode: "4006381333931"})
	require.NoError(t, err)

	got, ok, err := repo.GetByBarcode("4006381333931")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tape", got.Name)

	_, ok, err = repo.GetByBarcode("0000000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateCategoryBulk(t *testing.T) {
	repo := newItemRepo(t)
	var ids []int64
	for i := 0; i < 3; i++ {
		item, err := repo.CreateItem(types.Item{Name: "part", Category: "A"})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	t.Run("empty id list is a no-op", func(t *testing.T) {
		n, err := repo.UpdateCategoryBulk(nil, "B")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("moves all three", func(t *testing.T) {
		n, err := repo.UpdateCategoryBulk(ids, "B")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		moved, err := repo.GetByCategory("B")
		require.NoError(t, err)
		assert.Len(t, moved, 3)
	})
}

func TestLowStock(t *testing.T) {
	repo := newItemRepo(t)
	_, err := repo.CreateItem(types.Item{Name: "scarce", Quantity: 2})
	require.NoError(t, err)
	_, err = repo.CreateItem(types.Item{Name: "plenty", Quantity: 10})
	require.NoError(t, err)

	got, err := repo.LowStock(5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "scarce", got[0].Name)
}

func TestNeedingReorder(t *testing.T) {
	repo := newItemRepo(t)
	for _, it := range []types.Item{
		{Name: "below", Quantity: 3, ReorderPoint: 5},
		{Name: "at", Quantity: 5, ReorderPoint: 5},
		{Name: "above", Quantity: 9, ReorderPoint: 5},
		{Name: "untracked", Quantity: 0, ReorderPoint: 0},
	} {
		_, err := repo.CreateItem(it)
		require.NoError(t, err)
	}

	got, err := repo.NeedingReorder()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "at", got[0].Name)
	assert.Equal(t, "below", got[1].Name)
}

func TestTotals(t *testing.T) {
	repo := newItemRepo(t)

	t.Run("empty table totals are zero", func(t *testing.T) {
		qty, err := repo.TotalQuantity()
		require.NoError(t, err)
		assert.Zero(t, qty)

		value, err := repo.TotalValue()
		require.NoError(t, err)
		assert.Zero(t, value)
	})

	_, err := repo.CreateItem(types.Item{Name: "a", Quantity: 3, UnitValue: 2})
	require.NoError(t, err)
	_, err = repo.CreateItem(types.Item{Name: "b", Quantity: 7, UnitValue: 0.5})
	require.NoError(t, err)

	qty, err := repo.TotalQuantity()
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	value, err := repo.TotalValue()
	require.NoError(t, err)
	assert.InDelta(t, 9.5, value, 1e-9)
}
