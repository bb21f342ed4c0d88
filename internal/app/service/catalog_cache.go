package service

import (
	"sync"
	"time"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/casaviva/hogar-backend/pkg/logger"
)

// CatalogCache holds an in-memory snapshot of every product, in repository
// order. The snapshot is shared read-only; callers must not modify it.
type CatalogCache struct {
	mu       sync.RWMutex
	repo     repository.ProductRepository
	products []model.Product
	loaded   bool
	loadedAt time.Time
	// bumped by Invalidate; a load started under an older generation is dropped
	generation uint64
}

func NewCatalogCache(repo repository.ProductRepository) *CatalogCache {
	return &CatalogCache{repo: repo}
}

// Products returns the snapshot, loading it on first use or after Invalidate.
func (c *CatalogCache) Products() ([]model.Product, error) {
	c.mu.RLock()
	if c.loaded {
		products := c.products
		c.mu.RUnlock()
		return products, nil
	}
	c.mu.RUnlock()

	return c.load()
}

// Refresh reloads the snapshot from the repository. On failure the previous
// snapshot is kept. A result read before a concurrent Invalidate is discarded
// and the load retried once.
func (c *CatalogCache) Refresh() error {
	_, err := c.load()
	return err
}

// load returns the rows it read even when they are not kept as the snapshot.
func (c *CatalogCache) load() ([]model.Product, error) {
	for attempt := 0; ; attempt++ {
		c.mu.RLock()
		generation := c.generation
		c.mu.RUnlock()

		products, err := c.repo.FindAll()
		if err != nil {
			logger.Error("Failed to refresh catalog snapshot", err)
			return nil, err
		}

		c.mu.Lock()
		if c.generation != generation {
			c.mu.Unlock()
			logger.Debug("Catalog changed during refresh, discarding snapshot", map[string]interface{}{
				"attempt": attempt,
			})
			if attempt == 0 {
				continue
			}
			return products, nil
		}
		c.products = products
		c.loaded = true
		c.loadedAt = time.Now()
		c.mu.Unlock()

		logger.Debug("Catalog snapshot refreshed", map[string]interface{}{
			"products": len(products),
		})
		return products, nil
	}
}

// Invalidate drops the snapshot so the next read reloads it.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.products = nil
	c.loaded = false
	c.generation++
	c.mu.Unlock()
}

// LoadedAt is the zero time until the first successful load.
func (c *CatalogCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
