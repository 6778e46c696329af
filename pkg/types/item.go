package types

import "time"

// Item is one inventory item. Value is a maintained invariant: every write
// path that changes Quantity or UnitValue recomputes Value with them.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Model        string    `json:"model,omitempty"`
	Vendor       string    `json:"vendor,omitempty"`
	Quantity     int64     `json:"quantity"`
	UnitValue    float64   `json:"unitValue"`
	Value        float64   `json:"value"`
	Picture      string    `json:"picture,omitempty"`
	Category     string    `json:"category,omitempty"`
	Location     string    `json:"location,omitempty"`
	Barcode      string    `json:"barcode,omitempty"`
	ReorderPoint int64     `json:"reorderPoint"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NeedsReorder reports whether the item is at or below its reorder point.
// Items with no reorder point configured never need reordering.
func (i Item) NeedsReorder() bool {
	return i.ReorderPoint > 0 && i.Quantity <= i.ReorderPoint
}
