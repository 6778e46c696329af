package types

import (
	"strings"
	"time"
)

// VendorPrice is one cached vendor price lookup, keyed by its business key
// rather than the surrogate id. Entries older than the configured max age
// are eligible for purge but are not evicted on read.
type VendorPrice struct {
	ID            int64     `json:"-"`
	CacheKey      string    `json:"cacheKey"`
	Vendor        string    `json:"vendor"`
	PartNumber    string    `json:"partNumber"`
	Price         float64   `json:"price"`
	InStock       bool      `json:"inStock"`
	StockQuantity *int64    `json:"stockQuantity,omitempty"`
	VendorURL     string    `json:"vendorUrl,omitempty"`
	LastChecked   time.Time `json:"lastChecked"`
}

// VendorCacheKey builds the business key for a vendor/part pair.
func VendorCacheKey(vendor, partNumber string) string {
	return strings.ToLower(vendor) + "-" + strings.ToLower(partNumber)
}
