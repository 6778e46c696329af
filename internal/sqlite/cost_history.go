package sqlite

import (
	"time"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func costEntryFromRow(m map[string]any) types.CostEntry {
	return types.CostEntry{
		ID:        asInt64(m["id"]),
		ItemID:    asInt64(m["itemId"]),
		OldValue:  asFloat64(m["oldValue"]),
		NewValue:  asFloat64(m["newValue"]),
		Source:    asString(m["source"]),
		Timestamp: asTime(m["timestamp"]),
	}
}

func costEntryToRecord(e types.CostEntry) *Record {
	return NewRecord().
		Set("id", e.ID).
		Set("itemId", e.ItemID).
		Set("oldValue", e.OldValue).
		Set("newValue", e.NewValue).
		Set("source", e.Source).
		Set("timestamp", formatTime(e.Timestamp))
}

// CostHistoryRepo is the append-only unit cost ledger. Like the stock
// ledger it keeps the generic repository unexported so entries can never
// be updated in place.
type CostHistoryRepo struct {
	base *Repository[types.CostEntry]
}

// NewCostHistoryRepo returns the cost ledger repository.
func NewCostHistoryRepo(eng *Engine) *CostHistoryRepo {
	return &CostHistoryRepo{base: NewRepository(eng, EntityMeta[types.CostEntry]{
		Table:    types.TableCostHistory,
		FromRow:  costEntryFromRow,
		ToRecord: costEntryToRecord,
	})}
}

// Record appends a cost change for an item. When the value did not
// actually change nothing is written and a nil entry is returned.
func (r *CostHistoryRepo) Record(itemID int64, oldValue, newValue float64, source string) (*types.CostEntry, error) {
	if oldValue == newValue {
		return nil, nil
	}
	if source == "" {
		source = types.CostSourceManual
	}
	e, err := r.base.Create(types.CostEntry{
		ItemID:    itemID,
		OldValue:  oldValue,
		NewValue:  newValue,
		Source:    source,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ByItem returns the cost trail for one item, oldest first, so the
// slice reads as a price curve over time.
func (r *CostHistoryRepo) ByItem(itemID int64) ([]types.CostEntry, error) {
	return r.base.query(
		"SELECT * FROM cost_history WHERE item_id = ? ORDER BY timestamp ASC, id ASC", itemID)
}

// Latest returns the most recent cost change for an item, and whether
// the item has a cost trail at all.
func (r *CostHistoryRepo) Latest(itemID int64) (types.CostEntry, bool, error) {
	return r.base.queryOne(
		"SELECT * FROM cost_history WHERE item_id = ? ORDER BY timestamp DESC, id DESC LIMIT 1", itemID)
}

// All returns the whole cost ledger, newest first.
func (r *CostHistoryRepo) All() ([]types.CostEntry, error) {
	return r.base.query("SELECT * FROM cost_history ORDER BY timestamp DESC, id DESC")
}

// Count returns the total number of cost entries.
func (r *CostHistoryRepo) Count() (int64, error) {
	return r.base.Count()
}

// DeleteForItem removes an item's cost trail, returning the count
// removed. Used when an item is purged outright.
func (r *CostHistoryRepo) DeleteForItem(itemID int64) (int64, error) {
	return r.base.eng.Execute("DELETE FROM cost_history WHERE item_id = ?", itemID)
}
