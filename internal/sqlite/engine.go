package sqlite

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

// dbFileName is the scratch database file the engine runs against. The
// durable copy is the snapshot in the key-value store, not this file.
const dbFileName = "partsbin.db"

// Statement is one parameterized SQL statement for Transaction.
type Statement struct {
	SQL  string
	Args []any
}

// Engine owns the single embedded SQLite instance for the process
// lifetime. It loads the database from a snapshot in the key-value store
// on first use and writes a fresh snapshot after every mutation, so every
// committed mutation is durable before the call returns.
//
// Query and Execute tolerate a not-yet-initialized engine (empty result,
// zero count) so callers do not need defensive checks during the startup
// window.
type Engine struct {
	cfg types.Config
	kv  *kvstore.Store
	log *zap.Logger

	once sync.Once
	mu   sync.Mutex
	db   *sqlx.DB
	path string
}

// NewEngine returns an engine over the given key-value store. Call Init
// before use; Init is also collapsed, so concurrent callers share one
// initialization.
func NewEngine(cfg types.Config, kv *kvstore.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg.WithDefaults(), kv: kv, log: log}
}

// Init initializes the engine exactly once: load the snapshot if present,
// fall back to a fresh database on any load failure, then apply schema.
// Concurrent callers all observe the single in-flight initialization.
func (e *Engine) Init() error {
	var err error
	e.once.Do(func() {
		err = e.initialize()
	})
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		return types.ErrNotInitialized
	}
	return nil
}

func (e *Engine) initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.path = filepath.Join(e.cfg.DataDir, dbFileName)

	if err := restoreSnapshot(e.kv, e.cfg.SnapshotKey, e.path); err != nil {
		// Corrupt or unreadable snapshot: continue with a fresh
		// database. This is silent data loss, so it is loud in the log.
		e.log.Error("snapshot restore failed, starting fresh database",
			zap.String("key", e.cfg.SnapshotKey), zap.Error(err))
	}

	db, err := sqlx.Open("sqlite", e.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		// The restored file may not be a database at all. Start fresh.
		e.log.Error("schema apply failed on restored database, starting fresh",
			zap.Error(err))
		db.Close()
		if db, err = e.freshDatabase(); err != nil {
			return err
		}
	}

	e.db = db

	if err := e.ensureVersion(); err != nil {
		db.Close()
		e.db = nil
		return err
	}
	return nil
}

func (e *Engine) freshDatabase() (*sqlx.DB, error) {
	if err := removeDatabaseFiles(e.path); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite", e.path)
	if err != nil {
		return nil, fmt.Errorf("opening fresh database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return db, nil
}

// applySchema runs the idempotent DDL: tables, additive column changes,
// indexes. Safe to call any number of times.
func applySchema(db *sqlx.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range additiveDDL {
		// Column already present on current-version databases.
		db.Exec(stmt)
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// ensureVersion compares the stored schema version against schemaVersion
// and bumps the row after the (already applied) idempotent DDL brings the
// database forward. Never destructive.
func (e *Engine) ensureVersion() error {
	var stored int
	err := e.db.QueryRow("SELECT version FROM schema_info WHERE id = 1").Scan(&stored)
	if err != nil {
		// No version row yet: fresh database.
		_, err = e.db.Exec("INSERT OR REPLACE INTO schema_info (id, version) VALUES (1, ?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
		return nil
	}
	if stored < schemaVersion {
		e.log.Info("upgrading schema",
			zap.Int("from", stored), zap.Int("to", schemaVersion))
		if _, err := e.db.Exec("UPDATE schema_info SET version = ? WHERE id = 1", schemaVersion); err != nil {
			return fmt.Errorf("bumping schema version: %w", err)
		}
	}
	return nil
}

// Query runs a SELECT and returns the rows as storage-name keyed maps.
// Returns an empty result when the engine is not yet initialized.
func (e *Engine) Query(query string, args ...any) ([]map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		e.log.Debug("query before init", zap.String("query", query))
		return nil, nil
	}

	rows, err := e.db.Queryx(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		normalizeRow(row)
		out = append(out, row)
	}
	return out, rows.Err()
}

// QueryOne runs a SELECT expected to produce at most one row. The second
// return value reports whether a row was found.
func (e *Engine) QueryOne(query string, args ...any) (map[string]any, bool, error) {
	rows, err := e.Query(query, args...)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0], true, nil
}

// Execute runs a mutating statement, persists a snapshot, and returns the
// affected row count. Returns 0 when the engine is not yet initialized.
func (e *Engine) Execute(stmt string, args ...any) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		e.log.Debug("execute before init", zap.String("stmt", stmt))
		return 0, nil
	}

	res, err := e.db.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("execute: %w", err)
	}
	n, _ := res.RowsAffected()
	e.persistLocked()
	return n, nil
}

// Transaction runs the statements atomically: any failure rolls the whole
// sequence back and propagates. A snapshot is persisted after commit.
func (e *Engine) Transaction(stmts []Statement) error {
	return e.withTx(func(tx *sqlx.Tx) error {
		for _, s := range stmts {
			if _, err := tx.Exec(s.SQL, s.Args...); err != nil {
				return fmt.Errorf("transaction statement: %w", err)
			}
		}
		return nil
	})
}

// withTx runs fn inside a transaction, rolling back on error and
// persisting a snapshot after commit. Repositories use it for multi-step
// atomicity (id assignment plus insert, upsert branches).
func (e *Engine) withTx(fn func(tx *sqlx.Tx) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return types.ErrNotInitialized
	}

	tx, err := e.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	e.persistLocked()
	return nil
}

// NextID returns COALESCE(MAX(id),0)+1 for the table. Migration depends
// on explicit-id inserts being able to exceed this value, so it is a scan,
// not an AUTOINCREMENT sequence. Create paths compute it inside the same
// transaction as their insert.
func (e *Engine) NextID(table string) (int64, error) {
	if !knownTable(table) {
		return 0, types.ErrUnknownTable
	}
	row, ok, err := e.QueryOne("SELECT COALESCE(MAX(id), 0) + 1 AS next_id FROM " + table)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return asInt64(row["next_id"]), nil
}

func nextIDTx(tx *sqlx.Tx, table string) (int64, error) {
	if !knownTable(table) {
		return 0, types.ErrUnknownTable
	}
	var next int64
	if err := tx.QueryRow("SELECT COALESCE(MAX(id), 0) + 1 FROM " + table).Scan(&next); err != nil {
		return 0, fmt.Errorf("computing next id for %s: %w", table, err)
	}
	return next, nil
}

// Persist forces a snapshot write outside the normal after-mutation path.
// The migration engine calls it before cleaning up legacy keys.
func (e *Engine) Persist() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		return
	}
	e.persistLocked()
}

// persistLocked serializes the database into the key-value store. Failure
// is logged, never propagated: a failed persist must not abort the
// logical operation that already mutated in-memory state.
func (e *Engine) persistLocked() {
	if err := persistSnapshot(e.db, e.kv, e.cfg.SnapshotKey, e.path); err != nil {
		e.log.Error("snapshot persist failed, durable copy is stale", zap.Error(err))
	}
}

// Close releases the database handle. The engine cannot be reused.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

func knownTable(table string) bool {
	for _, t := range types.Tables {
		if t == table {
			return true
		}
	}
	return false
}

// normalizeRow converts []byte column values to string so the mapper and
// coercion helpers see one text representation.
func normalizeRow(row map[string]any) {
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
}
