package cart

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Registry owns the live Store of every recently used cart session and lends
// them to request handlers. Evicted sessions are re-hydrated from storage on
// their next request; a handler still holding the evicted Store is routed to
// the new one.
type Registry struct {
	mu      sync.Mutex
	stores  *lru.Cache
	storage Storage
}

func NewRegistry(size int, storage Storage) (*Registry, error) {
	r := &Registry{storage: storage}
	cache, err := lru.NewWithEvict(size, func(_ interface{}, value interface{}) {
		value.(*Store).markStale()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cart session cache: %w", err)
	}
	r.stores = cache
	return r, nil
}

// Store returns the hydrated cart of sessionID, creating it on first use.
func (r *Registry) Store(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	var store *Store
	if cached, ok := r.stores.Get(sessionID); ok {
		store = cached.(*Store)
	} else {
		store = NewStore(sessionID, r.storage)
		store.owner = r
		r.stores.Add(sessionID, store)
	}
	r.mu.Unlock()

	store.Hydrate(ctx)
	return store
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	return r.stores.Len()
}
