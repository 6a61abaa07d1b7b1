// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHashAST(t *testing.T) {
	a := HashAST([]byte(`{"nodes": []}`))
	b := HashAST([]byte(`{"nodes": [1]}`))

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashAST([]byte(`{"nodes": []}`)))
}

func TestStorePutGet(t *testing.T) {
	store := openTestStore(t)
	hash := HashAST([]byte("doc"))

	_, found, err := store.Get(hash, false)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(hash, false, "a.sol", "diagram-default"))
	require.NoError(t, store.Put(hash, true, "a.sol", "diagram-light"))

	got, found, err := store.Get(hash, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "diagram-default", got)

	// The palettes are independent cache slots.
	got, found, err = store.Get(hash, true)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "diagram-light", got)
}

func TestStorePutReplaces(t *testing.T) {
	store := openTestStore(t)
	hash := HashAST([]byte("doc"))

	require.NoError(t, store.Put(hash, false, "a.sol", "first"))
	require.NoError(t, store.Put(hash, false, "b.sol", "second"))

	got, found, err := store.Get(hash, false)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", got)

	count, _, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStoreListAndStats(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(HashAST([]byte("one")), false, "one.sol", "d1"))
	require.NoError(t, store.Put(HashAST([]byte("two")), false, "two.sol", "d2x"))

	entries, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = store.List(1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	count, bytes, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, int64(len("d1")+len("d2x")), bytes)
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put(HashAST([]byte("one")), false, "", "d1"))
	require.NoError(t, store.Put(HashAST([]byte("two")), true, "", "d2"))

	n, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, _, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
