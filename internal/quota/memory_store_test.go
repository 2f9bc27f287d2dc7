package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	records := []Record{
		{Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)},
	}

	require.NoError(t, store.Put(ctx, "user-1", records))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestMemoryStore_UnknownUser(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_UsersAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", []Record{{Timestamp: time.Now()}}))

	got, err := store.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_PutEmptyClearsUser(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user-1", []Record{{Timestamp: time.Now()}}))
	require.NoError(t, store.Put(ctx, "user-1", nil))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put(ctx, "user-1", []Record{{Timestamp: original}}))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	got[0].Timestamp = got[0].Timestamp.Add(time.Hour)

	again, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, original, again[0].Timestamp)
}

func TestMemoryStore_ForRequestReturnsSharedStore(t *testing.T) {
	store := NewMemoryStore()
	assert.Same(t, store, store.ForRequest(nil, nil))
}
