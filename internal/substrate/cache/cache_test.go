package cache

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	key := Key("GET", "https://mygene.info/v3/gene/673")
	entry := &Entry{
		Status:    200,
		Header:    http.Header{"Content-Type": {"application/json"}},
		Body:      []byte(`{"symbol":"BRAF"}`),
		StoredAt:  time.Now().UTC(),
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}

	require.NoError(t, store.Put(context.Background(), key, entry))

	got, ok := store.Get(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, entry.Status, got.Status)
	require.Equal(t, entry.Body, got.Body)
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
}

func TestStoreMissAndHotLayer(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.Get(context.Background(), Key("GET", "https://mygene.info/v3/gene/missing"))
	require.False(t, ok)

	key := Key("GET", "https://mygene.info/v3/gene/673")
	require.NoError(t, store.Put(context.Background(), key, &Entry{Status: 200, Header: http.Header{}, ExpiresAt: time.Now().Add(time.Minute)}))

	// A second Store pointed at the same directory should still miss the hot
	// layer but hit the persisted row.
	store2, err := Open(dir)
	require.NoError(t, err)
	defer store2.Close()
	got, ok := store2.Get(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, 200, got.Status)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("max-age", func(t *testing.T) {
		h := http.Header{"Cache-Control": {"max-age=60"}}
		require.Equal(t, now.Add(60*time.Second), Expiry(h, now))
	})

	t.Run("no directives falls back to default max-stale", func(t *testing.T) {
		require.Equal(t, now.Add(DefaultMaxStale), Expiry(http.Header{}, now))
	})

	t.Run("no-store expires immediately", func(t *testing.T) {
		h := http.Header{"Cache-Control": {"no-store"}}
		require.Equal(t, now, Expiry(h, now))
	})
}

func TestCacheable(t *testing.T) {
	require.False(t, Cacheable(true, http.Header{}))
	require.False(t, Cacheable(false, http.Header{"Cache-Control": {"no-store"}}))
	require.True(t, Cacheable(false, http.Header{}))
}
