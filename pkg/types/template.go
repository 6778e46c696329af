package types

import "time"

// Template pre-fills item forms. DefaultFields is a partial item attribute
// bag stored as a packed JSON column.
type Template struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category,omitempty"`
	DefaultFields map[string]any `json:"defaultFields"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
