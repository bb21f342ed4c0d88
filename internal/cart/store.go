package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/casaviva/hogar-backend/pkg/logger"
)

// StorageNamespace prefixes every persisted cart key.
const StorageNamespace = "casaviva-cart"

// Storage is the key/value collaborator the cart is mirrored to.
// Get reports found=false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// StorageKey returns the persistence key of a cart session.
func StorageKey(sessionID string) string {
	return StorageNamespace + ":" + sessionID
}

// Store owns the cart state of one session. Dispatches are serialised so a
// session always has a single logical writer.
type Store struct {
	mu        sync.Mutex
	sessionID string
	key       string
	storage   Storage
	state     State
	hydrated  bool

	// set by the Registry; a stale Store forwards dispatches to the live one
	owner *Registry
	stale bool
}

func NewStore(sessionID string, storage Storage) *Store {
	return &Store{
		sessionID: sessionID,
		key:       StorageKey(sessionID),
		storage:   storage,
		state:     EmptyState(),
	}
}

// Hydrate loads the persisted item list once. Missing or unreadable data
// leaves the cart empty; it never returns an error.
func (s *Store) Hydrate(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrateLocked(ctx)
}

func (s *Store) hydrateLocked(ctx context.Context) State {
	if s.hydrated {
		return s.state
	}
	s.hydrated = true

	if s.storage == nil {
		return s.state
	}

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		logger.Warn("Failed to read persisted cart, starting empty", map[string]interface{}{
			"key":   s.key,
			"error": err.Error(),
		})
		return s.state
	}
	if !found || len(raw) == 0 {
		return s.state
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Discarding invalid persisted cart", map[string]interface{}{
			"key":   s.key,
			"error": err.Error(),
		})
		return s.state
	}

	s.state = Reduce(s.state, LoadItems{Items: items})
	logger.Debug("Cart hydrated", map[string]interface{}{
		"key":         s.key,
		"items":       len(s.state.Items),
		"total_items": s.state.TotalItems,
	})
	return s.state
}

// Dispatch applies action and mirrors the item list to storage when the
// action touches items. Storage failures are logged and swallowed.
// A Store evicted from its Registry hands the action to the session's live
// Store instead.
func (s *Store) Dispatch(ctx context.Context, action Action) State {
	s.mu.Lock()
	if s.stale && s.owner != nil {
		owner := s.owner
		s.mu.Unlock()
		return owner.Store(ctx, s.sessionID).Dispatch(ctx, action)
	}
	defer s.mu.Unlock()

	// A dispatch before hydration would be overwritten by the persisted list.
	s.hydrateLocked(ctx)
	s.state = Reduce(s.state, action)
	if action.touchesItems() {
		s.persist(ctx, s.state.Items)
	}
	return s.state
}

// markStale waits for an in-flight dispatch, so its write reaches storage
// before a replacement Store hydrates.
func (s *Store) markStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// State returns the current cart value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) AddItem(ctx context.Context, item LineItem) State {
	return s.Dispatch(ctx, AddItem{Item: item})
}

func (s *Store) RemoveItem(ctx context.Context, id string) State {
	return s.Dispatch(ctx, RemoveItem{ID: id})
}

func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) State {
	return s.Dispatch(ctx, UpdateQuantity{ID: id, Quantity: quantity})
}

func (s *Store) Clear(ctx context.Context) State {
	return s.Dispatch(ctx, ClearCart{})
}

func (s *Store) Toggle(ctx context.Context) State {
	return s.Dispatch(ctx, ToggleCart{})
}

func (s *Store) Open(ctx context.Context) State {
	return s.Dispatch(ctx, OpenCart{})
}

func (s *Store) Close(ctx context.Context) State {
	return s.Dispatch(ctx, CloseCart{})
}

func (s *Store) persist(ctx context.Context, items []LineItem) {
	if s.storage == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to encode cart items", err, map[string]interface{}{
			"key": s.key,
		})
		return
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		logger.Warn("Failed to persist cart, keeping in-memory state", map[string]interface{}{
			"key":   s.key,
			"error": err.Error(),
		})
	}
}
