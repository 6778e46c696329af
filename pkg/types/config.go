package types

import "time"

// DefaultSnapshotKey is the fixed key the serialized database snapshot is
// stored under in the key-value store.
const DefaultSnapshotKey = "partsbin:sqlite"

// DefaultVendorCacheMaxAge is how long a vendor price cache entry stays
// eligible before DeleteExpired will purge it. Staleness is checked by
// callers, never enforced on read.
const DefaultVendorCacheMaxAge = 24 * time.Hour

// Config holds the parameters for opening the partsbin store.
type Config struct {
	// DataDir is the directory holding the key-value store and the
	// scratch database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SnapshotKey is the key-value store key the database snapshot is
	// persisted under. Defaults to DefaultSnapshotKey when empty.
	SnapshotKey string `json:"snapshot_key" yaml:"snapshot_key"`

	// VendorCacheMaxAge bounds vendor price cache entry age for purges.
	// Defaults to DefaultVendorCacheMaxAge when zero.
	VendorCacheMaxAge time.Duration `json:"vendor_cache_max_age" yaml:"vendor_cache_max_age"`
}

// Validate checks that the Config is well-formed, returning a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// WithDefaults returns a copy of the Config with zero-valued optional
// fields replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.SnapshotKey == "" {
		c.SnapshotKey = DefaultSnapshotKey
	}
	if c.VendorCacheMaxAge == 0 {
		c.VendorCacheMaxAge = DefaultVendorCacheMaxAge
	}
	return c
}
