package sqlite

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

func vendorPriceFromRow(m map[string]any) types.VendorPrice {
	return types.VendorPrice{
		ID:            asInt64(m["id"]),
		CacheKey:      asString(m["cacheKey"]),
		Vendor:        asString(m["vendor"]),
		PartNumber:    asString(m["partNumber"]),
		Price:         asFloat64(m["price"]),
		InStock:       asBool(m["inStock"]),
		StockQuantity: asInt64Ptr(m["stockQuantity"]),
		VendorURL:     asString(m["vendorUrl"]),
		LastChecked:   asTime(m["lastChecked"]),
	}
}

func vendorPriceToRecord(p types.VendorPrice) *Record {
	return NewRecord().
		Set("id", p.ID).
		Set("cacheKey", p.CacheKey).
		Set("vendor", p.Vendor).
		Set("partNumber", p.PartNumber).
		Set("price", p.Price).
		Set("inStock", boolToInt(p.InStock)).
		Set("stockQuantity", int64OrNil(p.StockQuantity)).
		Set("vendorUrl", p.VendorURL).
		Set("lastChecked", formatTime(p.LastChecked))
}

// VendorCacheRepo stores cached vendor price lookups keyed by the
// vendor/part business key. The generic repository stays unexported
// because the public surface works in cache keys, not surrogate ids.
type VendorCacheRepo struct {
	base *Repository[types.VendorPrice]
}

// NewVendorCacheRepo returns the vendor price cache repository.
func NewVendorCacheRepo(eng *Engine) *VendorCacheRepo {
	return &VendorCacheRepo{base: NewRepository(eng, EntityMeta[types.VendorPrice]{
		Table:    types.TableVendorCache,
		FromRow:  vendorPriceFromRow,
		ToRecord: vendorPriceToRecord,
	})}
}

// Get returns the cached price for a cache key, and whether one exists.
// Staleness is the caller's concern; expired entries are still returned.
func (r *VendorCacheRepo) Get(cacheKey string) (types.VendorPrice, bool, error) {
	return r.base.queryOne(
		"SELECT * FROM vendor_price_cache WHERE cache_key = ?", cacheKey)
}

// All returns every cached price, most recently checked first.
func (r *VendorCacheRepo) All() ([]types.VendorPrice, error) {
	return r.base.query(
		"SELECT * FROM vendor_price_cache ORDER BY last_checked DESC, id DESC")
}

// AllMap returns the cache as a map from cache key to entry.
func (r *VendorCacheRepo) AllMap() (map[string]types.VendorPrice, error) {
	all, err := r.base.query("SELECT * FROM vendor_price_cache")
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.VendorPrice, len(all))
	for _, p := range all {
		out[p.CacheKey] = p
	}
	return out, nil
}

// Upsert writes a price under its cache key, replacing any existing entry
// for the key. The check-then-write pair runs in one transaction, and the
// entry is read back afterwards so the result is what was persisted.
func (r *VendorCacheRepo) Upsert(p types.VendorPrice) (types.VendorPrice, error) {
	if p.CacheKey == "" {
		p.CacheKey = types.VendorCacheKey(p.Vendor, p.PartNumber)
	}
	if p.LastChecked.IsZero() {
		p.LastChecked = time.Now().UTC()
	}

	err := r.base.eng.withTx(func(tx *sqlx.Tx) error {
		rec := vendorPriceToRecord(p)
		rec.Delete("id")
		rec.Delete("cacheKey")
		stmt, args := BuildUpdate(types.TableVendorCache, rec, "cache_key = ?", []any{p.CacheKey}, nil)
		res, err := tx.Exec(stmt, args...)
		if err != nil {
			return fmt.Errorf("updating vendor cache: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		id, err := nextIDTx(tx, types.TableVendorCache)
		if err != nil {
			return err
		}
		p.ID = id
		ins, insArgs := BuildInsert(types.TableVendorCache, vendorPriceToRecord(p), nil)
		if _, err := tx.Exec(ins, insArgs...); err != nil {
			return fmt.Errorf("inserting vendor cache entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.VendorPrice{}, err
	}

	stored, ok, err := r.Get(p.CacheKey)
	if err != nil {
		return types.VendorPrice{}, err
	}
	if !ok {
		return types.VendorPrice{}, fmt.Errorf("reading back vendor cache key %q", p.CacheKey)
	}
	return stored, nil
}

// Delete removes one cache entry by cache key, reporting whether one was
// removed.
func (r *VendorCacheRepo) Delete(cacheKey string) (bool, error) {
	n, err := r.base.eng.Execute(
		"DELETE FROM vendor_price_cache WHERE cache_key = ?", cacheKey)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired purges entries last checked more than maxAge ago,
// returning the count removed.
func (r *VendorCacheRepo) DeleteExpired(maxAge time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-maxAge))
	return r.base.eng.Execute(
		"DELETE FROM vendor_price_cache WHERE last_checked < ?", cutoff)
}

// Count returns the number of cached entries.
func (r *VendorCacheRepo) Count() (int64, error) {
	return r.base.Count()
}

// Clear empties the cache, returning the count removed.
func (r *VendorCacheRepo) Clear() (int64, error) {
	return r.base.eng.Execute("DELETE FROM vendor_price_cache")
}
