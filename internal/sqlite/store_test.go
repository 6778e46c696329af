// Unit tests for the Store facade: open, seed, migrate, reopen.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfware-labs/partsbin/internal/kvstore"
	"github.com/shelfware-labs/partsbin/pkg/types"
)

func TestOpenValidatesConfig(t *testing.T) {
	_, err := Open(types.Config{}, nil)
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)
}

func TestOpenSeedsFreshStore(t *testing.T) {
	s, err := Open(types.Config{DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	defer s.Close()

	nAccounts, err := s.Accounts.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), nAccounts)

	nItems, err := s.Items.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), nItems)
}

func TestOpenMigratesInsteadOfSeeding(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvstore.Open(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(legacyInitializedKey, "true"))
	require.NoError(t, kv.Set(legacyItemsKey, `[
		{"id": 7, "name": "legacy part", "quantity": 1, "unitValue": 2, "value": 2,
		 "createdAt": "2025-06-01T12:00:00.000Z", "updatedAt": "2025-06-01T12:00:00.000Z"}
	]`))

	s, err := Open(types.Config{DataDir: dir}, nil)
	require.NoError(t, err)
	defer s.Close()

	// Only the migrated item, no seed data.
	nItems, err := s.Items.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), nItems)

	item, ok, err := s.Items.GetByID(7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "legacy part", item.Name)

	nAccounts, err := s.Accounts.Count()
	require.NoError(t, err)
	assert.Zero(t, nAccounts)

	// The migrated database passes the post-transfer sanity check.
	ok, err = NewMigrator(s.KV(), s.Engine(), nil).Verify()
	require.NoError(t, err)
	assert.True(t, ok)
}

// A flat store that only carries the initialized flag, or empty
// collections, holds nothing to migrate: Open seeds it like any fresh
// store and keeps the stale keys out of the way of the data.
func TestOpenSeedsWhenLegacyStoreIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		keys map[string]string
	}{
		{"flag only", map[string]string{legacyInitializedKey: "true"}},
		{"flag plus empty collections", map[string]string{
			legacyInitializedKey: "true",
			legacyItemsKey:       `[]`,
			legacyUsersKey:       `[]`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			kv, err := kvstore.Open(dir)
			require.NoError(t, err)
			for k, v := range tt.keys {
				require.NoError(t, kv.Set(k, v))
			}

			s, err := Open(types.Config{DataDir: dir}, nil)
			require.NoError(t, err)
			defer s.Close()

			nAccounts, err := s.Accounts.Count()
			require.NoError(t, err)
			assert.Equal(t, int64(2), nAccounts)

			nItems, err := s.Items.Count()
			require.NoError(t, err)
			assert.Equal(t, int64(2), nItems)
		})
	}
}

func TestStoreReopenSeesData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(types.Config{DataDir: dir}, nil)
	require.NoError(t, err)
	created, err := s.Items.CreateItem(types.Item{Name: "persistent", Quantity: 1, UnitValue: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(types.Config{DataDir: dir}, nil)
	require.NoError(t, err)
	defer s2.Close()

	got, ok, err := s2.Items.GetByID(created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persistent", got.Name)

	// Seeding did not run again on the populated store.
	n, err := s2.Items.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "two seeded plus the created one")
}

func TestPurgeExpiredVendorPrices(t *testing.T) {
	s, err := Open(types.Config{DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.VendorCache.Upsert(types.VendorPrice{Vendor: "A", PartNumber: "1", Price: 1})
	require.NoError(t, err)

	n, err := s.PurgeExpiredVendorPrices()
	require.NoError(t, err)
	assert.Zero(t, n, "fresh entry survives the default max age")
}
