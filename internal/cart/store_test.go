package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStorage) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, f.getErr
}

func (f *failingStorage) Set(context.Context, string, []byte) error {
	f.sets++
	return f.setErr
}

func TestStore_PersistsItemListOnly(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore("session-1", storage)

	store.AddItem(ctx, lamp(3))
	store.Open(ctx)

	raw, found, err := storage.Get(ctx, StorageKey("session-1"))
	require.NoError(t, err)
	require.True(t, found)

	var items []LineItem
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "lamp-1", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)

	var generic interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	_, isList := generic.([]interface{})
	assert.True(t, isList, "persisted value must be the bare item list")
}

func TestStore_VisibilityDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{}
	store := NewStore("session-1", storage)

	store.Toggle(ctx)
	store.Open(ctx)
	store.Close(ctx)
	assert.Equal(t, 0, storage.sets)

	store.AddItem(ctx, lamp(3))
	store.UpdateQuantity(ctx, "lamp-1", 2)
	store.RemoveItem(ctx, "lamp-1")
	store.Clear(ctx)
	assert.Equal(t, 4, storage.sets)
}

func TestStore_HydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	first := NewStore("session-1", storage)
	first.AddItem(ctx, lamp(3))
	first.AddItem(ctx, lamp(3))
	first.AddItem(ctx, rug(1))

	second := NewStore("session-1", storage)
	state := second.Hydrate(ctx)

	require.Len(t, state.Items, 2)
	assert.Equal(t, 3, state.TotalItems)
	assert.InDelta(t, 49.9*2+120, state.TotalPrice, 1e-9)
	assert.False(t, state.IsOpen)
	require.NotNil(t, state.Items[0].OriginalPrice)
	assert.Equal(t, 59.9, *state.Items[0].OriginalPrice)
}

func TestStore_HydrateInvalidDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, StorageKey("broken"), []byte("{not json")))

	store := NewStore("broken", storage)
	state := store.Hydrate(ctx)

	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalItems)
}

func TestStore_HydrateWrongShapeStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, StorageKey("object"), []byte(`{"items":[]}`)))

	state := NewStore("object", storage).Hydrate(ctx)
	assert.Empty(t, state.Items)
}

func TestStore_HydrateReadFailureStartsEmpty(t *testing.T) {
	store := NewStore("s", &failingStorage{getErr: errors.New("connection refused")})

	state := store.Hydrate(context.Background())
	assert.Empty(t, state.Items)
}

func TestStore_HydrateOnlyOnce(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore("session-1", storage)
	store.Hydrate(ctx)

	other := NewStore("session-1", storage)
	other.AddItem(ctx, rug(2))

	state := store.Hydrate(ctx)
	assert.Empty(t, state.Items)
}

func TestStore_DispatchHydratesFirst(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	NewStore("session-1", storage).AddItem(ctx, rug(4))

	state := NewStore("session-1", storage).AddItem(ctx, lamp(2))

	require.Len(t, state.Items, 2)
	assert.Equal(t, "rug-1", state.Items[0].ID)
	assert.Equal(t, "lamp-1", state.Items[1].ID)
}

func TestStore_WriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{setErr: errors.New("quota exceeded")}
	store := NewStore("session-1", storage)

	state := store.AddItem(ctx, lamp(3))

	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, store.State().TotalItems)
	assert.Equal(t, 1, storage.sets)
}

func TestStore_NilStorage(t *testing.T) {
	ctx := context.Background()
	store := NewStore("session-1", nil)
	store.Hydrate(ctx)

	state := store.AddItem(ctx, lamp(3))
	assert.Equal(t, 1, state.TotalItems)
}

func TestRegistry_ReusesAndEvicts(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	registry, err := NewRegistry(1, storage)
	require.NoError(t, err)

	a := registry.Store(ctx, "a")
	a.AddItem(ctx, lamp(3))
	assert.Same(t, a, registry.Store(ctx, "a"))

	registry.Store(ctx, "b")
	assert.Equal(t, 1, registry.Len())

	reloaded := registry.Store(ctx, "a")
	assert.NotSame(t, a, reloaded)
	assert.Equal(t, 1, reloaded.State().TotalItems)
}

func TestRegistry_EvictedStoreKeepsSingleWriter(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	registry, err := NewRegistry(1, storage)
	require.NoError(t, err)

	stale := registry.Store(ctx, "s1")
	registry.Store(ctx, "s2")
	live := registry.Store(ctx, "s1")
	require.NotSame(t, stale, live)

	stale.AddItem(ctx, lamp(3))
	state := live.AddItem(ctx, rug(2))
	assert.Len(t, state.Items, 2)
	assert.Equal(t, 2, state.TotalItems)

	fresh := NewStore("s1", storage)
	persisted := fresh.Hydrate(ctx)
	require.Len(t, persisted.Items, 2)
	assert.Equal(t, "lamp-1", persisted.Items[0].ID)
	assert.Equal(t, "rug-1", persisted.Items[1].ID)
}

func TestRegistry_EvictionWaitsForPersistedWrite(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	registry, err := NewRegistry(1, storage)
	require.NoError(t, err)

	first := registry.Store(ctx, "s1")
	first.AddItem(ctx, lamp(3))
	registry.Store(ctx, "s2")

	state := first.AddItem(ctx, lamp(3))
	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, 2, registry.Store(ctx, "s1").State().TotalItems)
}

func TestNewRegistry_InvalidSize(t *testing.T) {
	_, err := NewRegistry(0, NewMemoryStorage())
	assert.Error(t, err)
}
