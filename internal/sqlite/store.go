package sqlite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

// Store is the top-level handle over the persistence layer: the engine
// plus one repository per entity. Open wires everything, runs the legacy
// migration when flat-store data is found, and seeds a brand-new
// database.
type Store struct {
	cfg types.Config
	kv  *kvstore.Store
	eng *Engine
	log *zap.Logger

	Accounts     *AccountRepo
	Items        *ItemRepo
	StockHistory *StockHistoryRepo
	CostHistory  *CostHistoryRepo
	BOMs         *BOMRepo
	Templates    *TemplateRepo
	VendorCache  *VendorCacheRepo
}

// Open validates the config, opens the key-value store and engine, and
// brings the database current: restore the snapshot, migrate legacy data
// if present, otherwise seed an empty database with defaults.
func Open(cfg types.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	kv, err := kvstore.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	eng := NewEngine(cfg, kv, log)
	if err := eng.Init(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:          cfg,
		kv:           kv,
		eng:          eng,
		log:          log,
		Accounts:     NewAccountRepo(eng),
		Items:        NewItemRepo(eng),
		StockHistory: NewStockHistoryRepo(eng),
		CostHistory:  NewCostHistoryRepo(eng),
		BOMs:         NewBOMRepo(eng),
		Templates:    NewTemplateRepo(eng),
		VendorCache:  NewVendorCacheRepo(eng),
	}

	migrator := NewMigrator(kv, eng, log)
	legacy, err := migrator.LegacyDataPresent()
	if err != nil {
		return nil, err
	}
	if legacy {
		report, err := migrator.Run()
		if err != nil {
			return nil, fmt.Errorf("migrating legacy data: %w", err)
		}
		if report.Total() > 0 {
			ok, err := migrator.Verify()
			if err != nil {
				return nil, fmt.Errorf("verifying migrated data: %w", err)
			}
			if !ok {
				log.Error("migrated database holds no data",
					zap.Int("imported", report.Total()),
					zap.Int("skipped", report.Skipped))
			}
		}
		log.Info("legacy migration complete",
			zap.Int("imported", report.Total()),
			zap.Int("skipped", report.Skipped))
	} else if err := seedDefaults(s.Accounts, s.Items, log); err != nil {
		return nil, err
	}

	return s, nil
}

// Engine exposes the underlying engine for raw queries and transactions.
func (s *Store) Engine() *Engine {
	return s.eng
}

// KV exposes the underlying key-value store.
func (s *Store) KV() *kvstore.Store {
	return s.kv
}

// Config returns the effective configuration, defaults applied.
func (s *Store) Config() types.Config {
	return s.cfg
}

// PurgeExpiredVendorPrices removes vendor cache entries older than the
// configured max age, returning the count removed.
func (s *Store) PurgeExpiredVendorPrices() (int64, error) {
	return s.VendorCache.DeleteExpired(s.cfg.VendorCacheMaxAge)
}

// Close persists a final snapshot and releases the database.
func (s *Store) Close() error {
	s.eng.Persist()
	return s.eng.Close()
}
