package sqlite

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
)

// The durable copy of the database is a base64-encoded serialization of
// the whole engine state under a single fixed key in the key-value store,
// overwritten wholesale on every mutation. O(database size) per write is
// an accepted cost at single-user embedded scale.

// restoreSnapshot decodes the stored snapshot into the scratch database
// path. A missing snapshot is not an error; a present but undecodable one
// is, so the caller can fall back to a fresh database.
func restoreSnapshot(kv *kvstore.Store, key, dbPath string) error {
	encoded, ok, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if !ok {
		return removeDatabaseFiles(dbPath)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := removeDatabaseFiles(dbPath); err != nil {
		return err
	}
	if err := os.WriteFile(dbPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing database file: %w", err)
	}
	return nil
}

// persistSnapshot serializes the live database with VACUUM INTO and
// stores it base64-encoded under key. VACUUM INTO produces a consistent
// copy regardless of journal state.
func persistSnapshot(db *sqlx.DB, kv *kvstore.Store, key, dbPath string) error {
	tmp := dbPath + ".snapshot"
	os.Remove(tmp)
	defer os.Remove(tmp)

	if _, err := db.Exec("VACUUM INTO ?", tmp); err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}
	raw, err := os.ReadFile(tmp)
	if err != nil {
		return fmt.Errorf("reading serialized database: %w", err)
	}
	if err := kv.Set(key, base64.StdEncoding.EncodeToString(raw)); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	return nil
}

// removeDatabaseFiles clears the scratch database and its sidecar files.
func removeDatabaseFiles(dbPath string) error {
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm", dbPath + "-journal"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}
