package service

import (
	"testing"

	"github.com/casaviva/hogar-backend/internal/app/model"
	"github.com/casaviva/hogar-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavingRepository runs afterRead once per FindAll, after the rows
// were read and before they are returned.
type interleavingRepository struct {
	repository.ProductRepository
	calls     int
	afterRead func(call int)
}

func (r *interleavingRepository) FindAll() ([]model.Product, error) {
	products, err := r.ProductRepository.FindAll()
	r.calls++
	if r.afterRead != nil {
		r.afterRead(r.calls)
	}
	return products, err
}

func TestCatalogCache_InvalidateDuringRefreshDropsStaleRows(t *testing.T) {
	f := setupCatalogFixture(t)
	f.addProduct(t, "lamp-1", "Lámpara de mesa", "Iluminación", 49.9, 3)

	repo := &interleavingRepository{ProductRepository: f.productRepo}
	cache := NewCatalogCache(repo)
	repo.afterRead = func(call int) {
		if call == 1 {
			f.addProduct(t, "rug-1", "Alfombra de yute", "Textiles", 120, 2)
			cache.Invalidate()
		}
	}

	require.NoError(t, cache.Refresh())
	assert.Equal(t, 2, repo.calls)

	products, err := cache.Products()
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 2, repo.calls, "snapshot kept after the retry")
}

func TestCatalogCache_ContinuousInvalidationIsNotCached(t *testing.T) {
	f := setupCatalogFixture(t)
	f.addProduct(t, "lamp-1", "Lámpara de mesa", "Iluminación", 49.9, 3)

	repo := &interleavingRepository{ProductRepository: f.productRepo}
	cache := NewCatalogCache(repo)
	repo.afterRead = func(int) { cache.Invalidate() }

	products, err := cache.Products()
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.True(t, cache.LoadedAt().IsZero())

	repo.afterRead = nil
	_, err = cache.Products()
	require.NoError(t, err)
	assert.Equal(t, 3, repo.calls)
	assert.False(t, cache.LoadedAt().IsZero())
}
