package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

// Keys used by the flat-store era, before everything moved into the
// single serialized database snapshot.
const (
	legacyInitializedKey = "partsbin:initialized"
	legacyUsersKey       = "partsbin:users"
	legacyItemsKey       = "partsbin:items"
	legacyStockKey       = "partsbin:stockHistory"
	legacyCostKey        = "partsbin:costHistory"
	legacyBOMsKey        = "partsbin:boms"
	legacyTemplatesKey   = "partsbin:templates"
	legacyVendorKey      = "partsbin:vendorPrices"
)

var legacyCollectionKeys = []string{
	legacyUsersKey,
	legacyItemsKey,
	legacyStockKey,
	legacyCostKey,
	legacyBOMsKey,
	legacyTemplatesKey,
	legacyVendorKey,
}

// legacyKeys is everything Run removes on cleanup, flag included.
var legacyKeys = append([]string{legacyInitializedKey}, legacyCollectionKeys...)

// MigrationReport counts what a legacy migration imported per collection.
type MigrationReport struct {
	Accounts     int
	Items        int
	StockEntries int
	CostEntries  int
	BOMs         int
	Templates    int
	VendorPrices int
	Skipped      int
}

// Total returns the number of records imported across all collections.
func (r MigrationReport) Total() int {
	return r.Accounts + r.Items + r.StockEntries + r.CostEntries +
		r.BOMs + r.Templates + r.VendorPrices
}

// Migrator imports flat-store data into the database. Original ids are
// preserved so cross-references between collections survive, and every
// insert is an INSERT OR IGNORE, which makes a re-run after a crash
// converge instead of duplicating rows.
type Migrator struct {
	kv  *kvstore.Store
	eng *Engine
	log *zap.Logger
}

// NewMigrator returns a migrator over the store and engine.
func NewMigrator(kv *kvstore.Store, eng *Engine, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{kv: kv, eng: eng, log: log}
}

// LegacyDataPresent reports whether a flat-store install left data worth
// migrating: the initialized flag must exist and at least one collection
// key must hold a non-empty array. A flag with only empty or missing
// collections is not legacy data; that store goes down the seed path.
func (m *Migrator) LegacyDataPresent() (bool, error) {
	flagged, err := m.kv.Has(legacyInitializedKey)
	if err != nil || !flagged {
		return false, err
	}
	for _, key := range legacyCollectionKeys {
		value, ok, err := m.kv.Get(key)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		var raws []json.RawMessage
		if err := json.Unmarshal([]byte(value), &raws); err != nil {
			continue
		}
		if len(raws) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Run imports every legacy collection, persists the snapshot, and removes
// the legacy keys. Individual records that fail to decode are logged and
// skipped; a collection that fails wholesale aborts the migration so the
// legacy keys stay in place for another attempt.
func (m *Migrator) Run() (MigrationReport, error) {
	var report MigrationReport

	type collection struct {
		key     string
		count   *int
		convert func(map[string]any) (*Record, error)
	}
	collections := []collection{
		{legacyUsersKey, &report.Accounts, m.convertAccount},
		{legacyItemsKey, &report.Items, func(raw map[string]any) (*Record, error) {
			return itemToRecord(itemFromRow(raw)), nil
		}},
		{legacyStockKey, &report.StockEntries, func(raw map[string]any) (*Record, error) {
			return stockEntryToRecord(stockEntryFromRow(raw)), nil
		}},
		{legacyCostKey, &report.CostEntries, func(raw map[string]any) (*Record, error) {
			return costEntryToRecord(costEntryFromRow(raw)), nil
		}},
		{legacyBOMsKey, &report.BOMs, func(raw map[string]any) (*Record, error) {
			return bomToRecord(bomFromRow(raw)), nil
		}},
		{legacyTemplatesKey, &report.Templates, func(raw map[string]any) (*Record, error) {
			return templateToRecord(templateFromRow(raw)), nil
		}},
		{legacyVendorKey, &report.VendorPrices, func(raw map[string]any) (*Record, error) {
			return vendorPriceToRecord(vendorPriceFromRow(raw)), nil
		}},
	}

	tableFor := map[string]string{
		legacyUsersKey:     types.TableAccounts,
		legacyItemsKey:     types.TableItems,
		legacyStockKey:     types.TableStockHistory,
		legacyCostKey:      types.TableCostHistory,
		legacyBOMsKey:      types.TableBOMs,
		legacyTemplatesKey: types.TableTemplates,
		legacyVendorKey:    types.TableVendorCache,
	}
	jsonFieldsFor := map[string][]string{
		legacyBOMsKey:      {"items"},
		legacyTemplatesKey: {"defaultFields"},
	}

	for _, c := range collections {
		value, ok, err := m.kv.Get(c.key)
		if err != nil {
			return report, err
		}
		if !ok {
			continue
		}

		var raws []map[string]any
		if err := json.Unmarshal([]byte(value), &raws); err != nil {
			return report, fmt.Errorf("decoding legacy %s: %w", c.key, err)
		}

		imported, skipped, err := m.importCollection(tableFor[c.key], jsonFieldsFor[c.key], raws, c.convert)
		if err != nil {
			return report, fmt.Errorf("importing legacy %s: %w", c.key, err)
		}
		*c.count = imported
		report.Skipped += skipped
		m.log.Info("migrated legacy collection",
			zap.String("key", c.key),
			zap.Int("imported", imported),
			zap.Int("skipped", skipped))
	}

	m.eng.Persist()

	for _, key := range legacyKeys {
		if err := m.kv.Delete(key); err != nil {
			return report, fmt.Errorf("removing legacy key %s: %w", key, err)
		}
	}
	return report, nil
}

// importCollection inserts every convertible record of one collection in
// a single transaction, keeping the original ids.
func (m *Migrator) importCollection(table string, jsonFields []string, raws []map[string]any, convert func(map[string]any) (*Record, error)) (int, int, error) {
	var imported, skipped int
	var recs []*Record
	for _, raw := range raws {
		rec, err := convert(raw)
		if err != nil {
			skipped++
			m.log.Warn("skipping legacy record",
				zap.String("table", table),
				zap.Error(err))
			continue
		}
		recs = append(recs, rec)
	}

	err := m.eng.withTx(func(tx *sqlx.Tx) error {
		for _, rec := range recs {
			stmt, args := BuildInsertOrIgnore(table, rec, jsonFields)
			res, err := tx.Exec(stmt, args...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			// OR IGNORE reports zero rows for an id already imported.
			if n > 0 {
				imported++
			}
		}
		return nil
	})
	if err != nil {
		return 0, skipped, err
	}
	return imported, skipped, nil
}

// convertAccount upgrades a legacy user record: the flat store kept a
// plaintext password field, which becomes a bcrypt hash, and accounts that
// signed in under the old scheme are treated as verified.
func (m *Migrator) convertAccount(raw map[string]any) (*Record, error) {
	a := accountFromRow(raw)
	a.Verified = true
	a.VerificationToken = ""
	a.VerificationExpires = nil

	if plain := asString(raw["password"]); plain != "" && a.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing legacy password: %w", err)
		}
		a.PasswordHash = string(hash)
	}
	if a.Email == "" {
		return nil, fmt.Errorf("legacy user id %d has no email", a.ID)
	}
	if a.Role == "" {
		a.Role = types.RoleStaff
	}
	return accountToRecord(a), nil
}

// Verify reports whether the migrated database holds any data at all,
// used as the post-migration sanity check.
func (m *Migrator) Verify() (bool, error) {
	for _, table := range types.Tables {
		row, ok, err := m.eng.QueryOne("SELECT COUNT(*) AS n FROM " + table)
		if err != nil {
			return false, err
		}
		if ok && asInt64(row["n"]) > 0 {
			return true, nil
		}
	}
	return false, nil
}
