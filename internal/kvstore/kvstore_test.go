package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSetGet(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("partsbin:items", `[{"id":1}]`))

	got, ok, err := s.Get("partsbin:items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, got)
}

func TestGetMissingKey(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.Get("absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("k", "first"))
	require.NoError(t, s.Set("k", "second"))

	got, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestDelete(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))

	ok, err := s.Has("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("k"))
}

func TestKeys(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Set("partsbin:items", "[]"))
	require.NoError(t, s.Set("partsbin:users", "[]"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"partsbin:items", "partsbin:users"}, keys)
}

func TestKeysSurviveSpecialCharacters(t *testing.T) {
	s := openStore(t)

	key := "partsbin:vendor/prices?v=1"
	require.NoError(t, s.Set(key, "x"))

	got, ok, err := s.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", got)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Contains(t, keys, key)
}
