package types

import "time"

// Stock change types. One ledger entry is appended per detected field
// transition; a single update that changes both quantity and category
// produces two entries.
const (
	ChangeCreated  = "created"
	ChangeUpdated  = "updated"
	ChangeDeleted  = "deleted"
	ChangeAdjusted = "adjusted"
	ChangeCategory = "category_changed"
)

// Cost change sources.
const (
	CostSourceManual       = "manual"
	CostSourceVendorLookup = "vendor_lookup"
	CostSourceImport       = "import"
)

// StockEntry is one row of the append-only stock change ledger. ItemID is
// a soft reference; ItemName is a denormalized snapshot so the ledger
// stays readable after the item is deleted.
type StockEntry struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"itemId"`
	ItemName         string    `json:"itemName"`
	ChangeType       string    `json:"changeType"`
	PreviousQuantity *int64    `json:"previousQuantity,omitempty"`
	NewQuantity      *int64    `json:"newQuantity,omitempty"`
	PreviousValue    *float64  `json:"previousValue,omitempty"`
	NewValue         *float64  `json:"newValue,omitempty"`
	PreviousCategory string    `json:"previousCategory,omitempty"`
	NewCategory      string    `json:"newCategory,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	UserID           *int64    `json:"userId,omitempty"`
	UserEmail        string    `json:"userEmail,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// CostEntry is one row of the append-only cost change ledger. No entry is
// written when OldValue equals NewValue.
type CostEntry struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"itemId"`
	OldValue  float64   `json:"oldValue"`
	NewValue  float64   `json:"newValue"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// StockFilter selects a subset of the stock ledger. Zero values mean
// "no constraint". To is expanded to the end of its day (23:59:59.999)
// so an end date is inclusive.
type StockFilter struct {
	ItemID     int64
	ChangeType string
	From       time.Time
	To         time.Time
	UserID     int64
}

// StockStats aggregates a filtered slice of the stock ledger.
type StockStats struct {
	Total            int64            `json:"total"`
	CountsByType     map[string]int64 `json:"countsByType"`
	NetQuantityDelta int64            `json:"netQuantityDelta"`
}
