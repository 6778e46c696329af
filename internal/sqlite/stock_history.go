package sqlite

import (
	"strings"
	"time"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func stockEntryFromRow(m map[string]any) types.StockEntry {
	return types.StockEntry{
		ID:               asInt64(m["id"]),
		ItemID:           asInt64(m["itemId"]),
		ItemName:         asString(m["itemName"]),
		ChangeType:       asString(m["changeType"]),
		PreviousQuantity: asInt64Ptr(m["previousQuantity"]),
		NewQuantity:      asInt64Ptr(m["newQuantity"]),
		PreviousValue:    asFloat64Ptr(m["previousValue"]),
		NewValue:         asFloat64Ptr(m["newValue"]),
		PreviousCategory: asString(m["previousCategory"]),
		NewCategory:      asString(m["newCategory"]),
		Notes:            asString(m["notes"]),
		UserID:           asInt64Ptr(m["userId"]),
		UserEmail:        asString(m["userEmail"]),
		Timestamp:        asTime(m["timestamp"]),
	}
}

func stockEntryToRecord(e types.StockEntry) *Record {
	return NewRecord().
		Set("id", e.ID).
		Set("itemId", e.ItemID).
		Set("itemName", e.ItemName).
		Set("changeType", e.ChangeType).
		Set("previousQuantity", int64OrNil(e.PreviousQuantity)).
		Set("newQuantity", int64OrNil(e.NewQuantity)).
		Set("previousValue", float64OrNil(e.PreviousValue)).
		Set("newValue", float64OrNil(e.NewValue)).
		Set("previousCategory", e.PreviousCategory).
		Set("newCategory", e.NewCategory).
		Set("notes", e.Notes).
		Set("userId", int64OrNil(e.UserID)).
		Set("userEmail", e.UserEmail).
		Set("timestamp", formatTime(e.Timestamp))
}

// StockHistoryRepo is the append-only stock change ledger. The generic
// repository is held unexported so update and delete never become public
// operations; the only removals are the explicit Clear.
type StockHistoryRepo struct {
	base *Repository[types.StockEntry]
}

// NewStockHistoryRepo returns the stock ledger repository.
func NewStockHistoryRepo(eng *Engine) *StockHistoryRepo {
	return &StockHistoryRepo{base: NewRepository(eng, EntityMeta[types.StockEntry]{
		Table:    types.TableStockHistory,
		FromRow:  stockEntryFromRow,
		ToRecord: stockEntryToRecord,
	})}
}

// Append writes one ledger entry. Callers append one entry per detected
// field transition; the ledger itself knows nothing about items.
func (r *StockHistoryRepo) Append(e types.StockEntry) (types.StockEntry, error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return r.base.Create(e)
}

// All returns the whole ledger, newest first.
func (r *StockHistoryRepo) All() ([]types.StockEntry, error) {
	return r.base.query("SELECT * FROM stock_history ORDER BY timestamp DESC, id DESC")
}

// ByItem returns the ledger entries for one item, newest first.
func (r *StockHistoryRepo) ByItem(itemID int64) ([]types.StockEntry, error) {
	return r.base.query(
		"SELECT * FROM stock_history WHERE item_id = ? ORDER BY timestamp DESC, id DESC", itemID)
}

// Filtered returns the entries matching every set field of the filter,
// newest first. The end date is expanded to 23:59:59.999 so it is
// inclusive.
func (r *StockHistoryRepo) Filtered(f types.StockFilter) ([]types.StockEntry, error) {
	where, args := stockWhere(f)
	stmt := "SELECT * FROM stock_history" + where + " ORDER BY timestamp DESC, id DESC"
	return r.base.query(stmt, args...)
}

// Recent returns the n newest entries.
func (r *StockHistoryRepo) Recent(n int64) ([]types.StockEntry, error) {
	return r.base.query(
		"SELECT * FROM stock_history ORDER BY timestamp DESC, id DESC LIMIT ?", n)
}

// Count returns the total number of ledger entries.
func (r *StockHistoryRepo) Count() (int64, error) {
	return r.base.Count()
}

// Clear removes every ledger entry, returning the count removed.
func (r *StockHistoryRepo) Clear() (int64, error) {
	return r.base.eng.Execute("DELETE FROM stock_history")
}

// Stats aggregates the filtered set: entry counts per change type and the
// net quantity delta across all matching entries.
func (r *StockHistoryRepo) Stats(f types.StockFilter) (types.StockStats, error) {
	where, args := stockWhere(f)
	rows, err := r.base.eng.Query(`SELECT change_type,
			COUNT(*) AS n,
			SUM(COALESCE(new_quantity, 0) - COALESCE(previous_quantity, 0)) AS delta
		FROM stock_history`+where+` GROUP BY change_type`, args...)
	if err != nil {
		return types.StockStats{}, err
	}

	stats := types.StockStats{CountsByType: make(map[string]int64)}
	for _, row := range rows {
		n := asInt64(row["n"])
		stats.CountsByType[asString(row["change_type"])] = n
		stats.Total += n
		stats.NetQuantityDelta += asInt64(row["delta"])
	}
	return stats, nil
}

// stockWhere builds the shared WHERE clause for Filtered and Stats. All
// set constraints combine with AND.
func stockWhere(f types.StockFilter) (string, []any) {
	var conds []string
	var args []any
	if f.ItemID != 0 {
		conds = append(conds, "item_id = ?")
		args = append(args, f.ItemID)
	}
	if f.ChangeType != "" {
		conds = append(conds, "change_type = ?")
		args = append(args, f.ChangeType)
	}
	if !f.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, formatTime(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, formatTime(endOfDay(f.To)))
	}
	if f.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func int64OrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func float64OrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
