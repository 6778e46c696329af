// Unit tests for the column mapper: name mapping, ordered records, and
// generated SQL.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func TestToStorageName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"itemId", "item_id"},
		{"unitValue", "unit_value"},
		{"emailVerificationToken", "email_verification_token"},
		{"createdAt", "created_at"},
		{"previousQuantity", "previous_quantity"},
		{"name", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToStorageName(tt.in))
		})
	}
}

func TestToProgramName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"item_id", "itemId"},
		{"unit_value", "unitValue"},
		{"email_verification_token", "emailVerificationToken"},
		{"created_at", "createdAt"},
		{"name", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToProgramName(tt.in))
		})
	}
}

func TestNameMappingRoundTrip(t *testing.T) {
	names := []string{
		"id", "itemId", "unitValue", "emailVerificationToken",
		"previousQuantity", "lastSignInAt", "cacheKey", "vendorUrl",
	}
	for _, name := range names {
		assert.Equal(t, name, ToProgramName(ToStorageName(name)), name)
	}
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	rec := NewRecord().
		Set("zeta", 1).
		Set("alpha", 2).
		Set("mu", 3)
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, rec.Keys())

	// Re-setting an existing key keeps its original position.
	rec.Set("alpha", 9)
	assert.Equal(t, []string{"zeta", "alpha", "mu"}, rec.Keys())
	v, ok := rec.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, 9, v)

	rec.Delete("zeta")
	assert.Equal(t, []string{"alpha", "mu"}, rec.Keys())
	assert.Equal(t, 2, rec.Len())
}

func TestBuildInsert(t *testing.T) {
	rec := NewRecord().
		Set("id", int64(3)).
		Set("itemId", int64(7)).
		Set("changeType", "adjusted")
	stmt, args := BuildInsert("stock_history", rec, nil)

	assert.Equal(t,
		"INSERT INTO stock_history (id, item_id, change_type) VALUES (?, ?, ?)",
		stmt)
	assert.Equal(t, []any{int64(3), int64(7), "adjusted"}, args)
}

func TestBuildInsertOrIgnore(t *testing.T) {
	rec := NewRecord().Set("id", int64(1)).Set("name", "screw")
	stmt, _ := BuildInsertOrIgnore("items", rec, nil)
	assert.Equal(t, "INSERT OR IGNORE INTO items (id, name) VALUES (?, ?)", stmt)
}

func TestBuildInsertPacksJSONFields(t *testing.T) {
	rec := NewRecord().
		Set("id", int64(1)).
		Set("items", []map[string]any{{"itemId": 7, "quantity": 2}})
	stmt, args := BuildInsert("boms", rec, []string{"items"})

	assert.Equal(t, "INSERT INTO boms (id, items) VALUES (?, ?)", stmt)
	require.Len(t, args, 2)
	packed, ok := args[1].(string)
	require.True(t, ok, "JSON field should serialize to a string")
	assert.JSONEq(t, `[{"itemId":7,"quantity":2}]`, packed)
}

func TestBuildUpdate(t *testing.T) {
	rec := NewRecord().
		Set("unitValue", 0.05).
		Set("updatedAt", "2026-01-02T00:00:00.000Z")
	stmt, args := BuildUpdate("items", rec, "id = ?", []any{int64(7)}, nil)

	assert.Equal(t,
		"UPDATE items SET unit_value = ?, updated_at = ? WHERE id = ?",
		stmt)
	assert.Equal(t, []any{0.05, "2026-01-02T00:00:00.000Z", int64(7)}, args)
}

func TestRowToEntity(t *testing.T) {
	t.Run("maps storage names and parses JSON fields", func(t *testing.T) {
		row := map[string]any{
			"item_id": int64(7),
			"items":   `[{"itemId":7,"quantity":2}]`,
		}
		got := RowToEntity(row, []string{"items"})

		assert.Equal(t, int64(7), got["itemId"])
		lines, ok := got["items"].([]any)
		require.True(t, ok)
		assert.Len(t, lines, 1)
	})

	t.Run("keeps raw string when JSON parse fails", func(t *testing.T) {
		row := map[string]any{"items": `{not json`}
		got := RowToEntity(row, []string{"items"})
		assert.Equal(t, `{not json`, got["items"])
	})
}

func TestEntityToRow(t *testing.T) {
	rec := NewRecord().
		Set("itemId", int64(7)).
		Set("defaultFields", map[string]any{"category": "Hardware"})
	row := EntityToRow(rec, []string{"defaultFields"})

	assert.Equal(t, []string{"item_id", "default_fields"}, row.Keys())
	v, ok := row.Get("default_fields")
	require.True(t, ok)
	packed, ok := v.(string)
	require.True(t, ok)
	assert.JSONEq(t, `{"category":"Hardware"}`, packed)
}

func TestColumnDescriptors(t *testing.T) {
	tables := map[string][]types.Column{
		types.TableAccounts:     types.AccountColumns,
		types.TableItems:        types.ItemColumns,
		types.TableStockHistory: types.StockEntryColumns,
		types.TableCostHistory:  types.CostEntryColumns,
		types.TableBOMs:         types.BOMColumns,
		types.TableTemplates:    types.TemplateColumns,
		types.TableVendorCache:  types.VendorPriceColumns,
	}

	for table, cols := range tables {
		t.Run(table, func(t *testing.T) {
			for _, c := range cols {
				assert.Equal(t, c.StorageName, ToStorageName(c.Name), c.Name)
				assert.Equal(t, c.Name, ToProgramName(c.StorageName), c.StorageName)
			}
		})
	}

	assert.Equal(t, []string{"items"}, types.JSONFields(types.BOMColumns))
	assert.Equal(t, []string{"defaultFields"}, types.JSONFields(types.TemplateColumns))
	assert.Nil(t, types.JSONFields(types.ItemColumns))
	assert.Contains(t, types.ColumnNames(types.ItemColumns), "reorderPoint")
}
