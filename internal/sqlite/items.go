package sqlite

import (
	"time"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func itemFromRow(m map[string]any) types.Item {
	return types.Item{
		ID:           asInt64(m["id"]),
		Name:         asString(m["name"]),
		Description:  asString(m["description"]),
		Model:        asString(m["model"]),
		Vendor:       asString(m["vendor"]),
		Quantity:     asInt64(m["quantity"]),
		UnitValue:    asFloat64(m["unitValue"]),
		Value:        asFloat64(m["value"]),
		Picture:      asString(m["picture"]),
		Category:     asString(m["category"]),
		Location:     asString(m["location"]),
		Barcode:      asString(m["barcode"]),
		ReorderPoint: asInt64(m["reorderPoint"]),
		CreatedAt:    asTime(m["createdAt"]),
		UpdatedAt:    asTime(m["updatedAt"]),
	}
}

func itemToRecord(i types.Item) *Record {
	var picture any
	if i.Picture != "" {
		picture = i.Picture
	}
	return NewRecord().
		Set("id", i.ID).
		Set("name", i.Name).
		Set("description", i.Description).
		Set("model", i.Model).
		Set("vendor", i.Vendor).
		Set("quantity", i.Quantity).
		Set("unitValue", i.UnitValue).
		Set("value", i.Value).
		Set("picture", picture).
		Set("category", i.Category).
		Set("location", i.Location).
		Set("barcode", i.Barcode).
		Set("reorderPoint", i.ReorderPoint).
		Set("createdAt", formatTime(i.CreatedAt)).
		Set("updatedAt", formatTime(i.UpdatedAt))
}

// ItemRepo stores inventory items. Every write path through it that
// touches quantity or unitValue recomputes value = quantity * unitValue
// atomically with the other fields.
type ItemRepo struct {
	*Repository[types.Item]
}

// NewItemRepo returns the items repository.
func NewItemRepo(eng *Engine) *ItemRepo {
	return &ItemRepo{NewRepository(eng, EntityMeta[types.Item]{
		Table:    types.TableItems,
		FromRow:  itemFromRow,
		ToRecord: itemToRecord,
	})}
}

// CreateItem inserts an item with its value recomputed and timestamps
// stamped.
func (r *ItemRepo) CreateItem(i types.Item) (types.Item, error) {
	i.Value = float64(i.Quantity) * i.UnitValue
	now := time.Now().UTC()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	return r.Create(i)
}

// UpdateItem applies a partial patch. When the patch supplies quantity or
// unitValue, the missing operand is taken from the existing row and value
// is recomputed and persisted in the same statement.
func (r *ItemRepo) UpdateItem(id int64, patch *Record) (types.Item, bool, error) {
	patch.Delete("id")
	if patch.Len() == 0 {
		return r.GetByID(id)
	}

	qv, hasQty := patch.Get("quantity")
	uv, hasUnit := patch.Get("unitValue")
	if hasQty || hasUnit {
		existing, ok, err := r.GetByID(id)
		if err != nil {
			return types.Item{}, false, err
		}
		if !ok {
			return types.Item{}, false, nil
		}
		quantity := existing.Quantity
		unitValue := existing.UnitValue
		if hasQty {
			quantity = asInt64(qv)
		}
		if hasUnit {
			unitValue = asFloat64(uv)
		}
		patch.Set("value", float64(quantity)*unitValue)
	}
	patch.Set("updatedAt", formatTime(time.Now()))
	return r.Update(id, patch)
}

// GetByCategory returns the items in a category, by name.
func (r *ItemRepo) GetByCategory(category string) ([]types.Item, error) {
	return r.query("SELECT * FROM items WHERE category = ? ORDER BY name COLLATE NOCASE", category)
}

// GetByBarcode returns the item carrying the barcode, if any.
func (r *ItemRepo) GetByBarcode(barcode string) (types.Item, bool, error) {
	return r.queryOne("SELECT * FROM items WHERE barcode = ?", barcode)
}

// UpdateCategoryBulk reassigns every given item to category in one
// statement, returning the affected count. An empty id list is a no-op.
func (r *ItemRepo) UpdateCategoryBulk(ids []int64, category string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	marks, args := idPlaceholders(ids)
	args = append([]any{category, formatTime(time.Now())}, args...)
	return r.eng.Execute(
		"UPDATE items SET category = ?, updated_at = ? WHERE id IN ("+marks+")", args...)
}

// LowStock returns the items at or below the quantity threshold.
func (r *ItemRepo) LowStock(threshold int64) ([]types.Item, error) {
	return r.query("SELECT * FROM items WHERE quantity <= ? ORDER BY quantity, name COLLATE NOCASE", threshold)
}

// NeedingReorder returns the items with a configured reorder point whose
// quantity has fallen to it or below.
func (r *ItemRepo) NeedingReorder() ([]types.Item, error) {
	return r.query("SELECT * FROM items WHERE reorder_point > 0 AND quantity <= reorder_point ORDER BY name COLLATE NOCASE")
}

// TotalQuantity sums quantity over all items, 0 on an empty table.
func (r *ItemRepo) TotalQuantity() (int64, error) {
	row, ok, err := r.eng.QueryOne("SELECT COALESCE(SUM(quantity), 0) AS total FROM items")
	if err != nil || !ok {
		return 0, err
	}
	return asInt64(row["total"]), nil
}

// TotalValue sums value over all items, 0 on an empty table.
func (r *ItemRepo) TotalValue() (float64, error) {
	row, ok, err := r.eng.QueryOne("SELECT COALESCE(SUM(value), 0) AS total FROM items")
	if err != nil || !ok {
		return 0, err
	}
	return asFloat64(row["total"]), nil
}
