package types

import "time"

// BOMLine is one component of a bill of materials. Quantity is at least 1.
type BOMLine struct {
	ItemID   int64  `json:"itemId"`
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// BOM is a bill of materials. Items is an ordered component list stored as
// a packed JSON column; referential integrity against inventory items is
// checked only at read time, where missing items are skipped.
type BOM struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Items       []BOMLine `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContainsItem reports whether any line of the BOM references itemID.
func (b BOM) ContainsItem(itemID int64) bool {
	for _, line := range b.Items {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}
