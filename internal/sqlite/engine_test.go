// Unit tests for the engine: initialization, snapshot cycle, not-ready
// reads, transactions, and id assignment.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

// newTestEngine returns an initialized engine over a fresh store in a
// temp directory, plus the store for snapshot-level assertions.
func newTestEngine(t *testing.T) (*Engine, *kvstore.Store) {
	t.Helper()
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)

	eng := NewEngine(types.Config{DataDir: dir}, kv, nil)
	require.NoError(t, eng.Init())
	t.Cleanup(func() { eng.Close() })
	return eng, kv
}

func TestInitIsIdempotent(t *testing.T) {
	eng, _ := newTestEngine(t)
	require.NoError(t, eng.Init())
	require.NoError(t, eng.Init())
}

func TestQueryBeforeInitReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)
	eng := NewEngine(types.Config{DataDir: dir}, kv, nil)

	rows, err := eng.Query("SELECT * FROM items")
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := eng.Execute("DELETE FROM items")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecuteAndQuery(t *testing.T) {
	eng, _ := newTestEngine(t)

	n, err := eng.Execute(
		"INSERT INTO items (id, name, quantity, unit_value, value, created_at, updated_at) VALUES (1, 'screw', 10, 0.5, 5.0, '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := eng.Query("SELECT name, quantity FROM items WHERE id = ?", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "screw", rows[0]["name"])
	assert.Equal(t, int64(10), rows[0]["quantity"])
}

func TestSnapshotPersistsAcrossEngines(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)

	eng := NewEngine(types.Config{DataDir: dir}, kv, nil)
	require.NoError(t, eng.Init())
	_, err = eng.Execute(
		"INSERT INTO items (id, name, quantity, unit_value, value, created_at, updated_at) VALUES (1, 'bolt', 3, 1.0, 3.0, '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')")
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	// Snapshot key exists in the kv store.
	ok, err := kv.Has(types.DefaultSnapshotKey)
	require.NoError(t, err)
	assert.True(t, ok)

	// A brand-new engine over the same store sees the row.
	eng2 := NewEngine(types.Config{DataDir: dir}, kv, nil)
	require.NoError(t, eng2.Init())
	defer eng2.Close()

	row, ok, err := eng2.QueryOne("SELECT name FROM items WHERE id = 1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bolt", row["name"])
}

func TestCorruptSnapshotFallsBackToFresh(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(types.DefaultSnapshotKey, "not base64 at all!!!"))

	eng := NewEngine(types.Config{DataDir: dir}, kv, nil)
	require.NoError(t, eng.Init())
	defer eng.Close()

	// Fresh, empty database: schema applied, no rows.
	rows, err := eng.Query("SELECT * FROM items")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactionRollsBackOnFailure(t *testing.T) {
	eng, _ := newTestEngine(t)

	err := eng.Transaction([]Statement{
		{SQL: "INSERT INTO items (id, name, quantity, unit_value, value, created_at, updated_at) VALUES (1, 'ok', 0, 0, 0, '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')"},
		{SQL: "INSERT INTO no_such_table (id) VALUES (1)"},
	})
	require.Error(t, err)

	rows, err := eng.Query("SELECT * FROM items")
	require.NoError(t, err)
	assert.Empty(t, rows, "first statement should have rolled back")
}

func TestNextID(t *testing.T) {
	eng, _ := newTestEngine(t)

	id, err := eng.NextID(types.TableItems)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = eng.Execute(
		"INSERT INTO items (id, name, quantity, unit_value, value, created_at, updated_at) VALUES (41, 'x', 0, 0, 0, '2026-01-01T00:00:00.000Z', '2026-01-01T00:00:00.000Z')")
	require.NoError(t, err)

	id, err = eng.NextID(types.TableItems)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestNextIDUnknownTable(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.NextID("sqlite_master")
	assert.ErrorIs(t, err, types.ErrUnknownTable)
}

func TestSchemaVersionStored(t *testing.T) {
	eng, _ := newTestEngine(t)

	row, ok, err := eng.QueryOne("SELECT version FROM schema_info WHERE id = 1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(schemaVersion), row["version"])
}
